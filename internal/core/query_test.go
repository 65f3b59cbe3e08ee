package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryField_Matches(t *testing.T) {
	st := mustStudent(t, func(in *StudentInput) { in.Status = "休学" })

	tests := []struct {
		field   QueryField
		keyword string
		want    bool
	}{
		{QueryByStudentID, "2023", true},
		{QueryByStudentID, "999", false},
		{QueryByName, "张", true},
		{QueryByName, "李", false},
		{QueryByStatus, "休学", true},
		{QueryByStatus, "入学", false},
		{QueryByDepartment, "计算机", true},
		{QueryByClass, "1班", true},
		{QueryByClass, "2班", false},
	}

	for _, tt := range tests {
		t.Run(tt.field.String()+"/"+tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.field.Matches(st, tt.keyword))
		})
	}
}

func TestQueryFieldFromChoice(t *testing.T) {
	for i, want := range QueryFields() {
		got, err := QueryFieldFromChoice(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, "按姓名查询", QueryByName.Title())
	assert.Equal(t, FieldLabelClassName, QueryByClass.Label())

	for _, bad := range []int{0, 6, -1} {
		_, err := QueryFieldFromChoice(bad)
		assert.ErrorIs(t, err, ErrValidation)
	}
	_, err := QueryFieldFromChoice(9)
	assert.EqualError(t, err, "无效的查询类型选择：9。请选择 1-5 之间的数字")

	var zero QueryField
	assert.False(t, zero.Valid())
	assert.Equal(t, "", zero.Value(mustStudent(t, nil)))
}
