package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm(t *testing.T) {
	f := NewForm("2025-03-01")

	assert.Equal(t, "Male", f.Gender)
	assert.Equal(t, "2025-03-01", f.DateOfDeath)
	assert.Equal(t, "Block A", f.BurialLocation)
	assert.Equal(t, "Pending", f.Status)
	assert.Equal(t, "None", f.SecondaryService)
	assert.False(t, f.HasName())
}

func TestForm_SetGet(t *testing.T) {
	var f Form

	require.NoError(t, f.Set("firstName", "Jane"))
	v, err := f.Get("firstName")
	require.NoError(t, err)
	assert.Equal(t, "Jane", v)
	assert.True(t, f.HasName())

	assert.ErrorIs(t, f.Set("shoeSize", "9"), ErrUnknownField)
	_, err = f.Get("shoeSize")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestForm_ValuesCoverEveryField(t *testing.T) {
	f := NewForm("2025-03-01")
	values := f.Values()

	assert.Len(t, values, len(FormFieldNames()))
	assert.Equal(t, "2025-03-01", values["dateOfDeath"])
}

func TestAgeCategory_AttachmentExempt(t *testing.T) {
	assert.True(t, AgeCategoryStillborn.AttachmentExempt())
	assert.True(t, AgeCategoryInfant.AttachmentExempt())
	assert.False(t, AgeCategoryChild.AttachmentExempt())
	assert.False(t, AgeCategoryAdult.AttachmentExempt())
	assert.False(t, AgeCategory("").AttachmentExempt())
}

func TestRecord_FullName(t *testing.T) {
	assert.Equal(t, "Jane Wanjiru Doe", Record{FirstName: "Jane", MiddleName: "Wanjiru", LastName: "Doe"}.FullName())
	assert.Equal(t, "Jane Doe", Record{FirstName: "Jane", LastName: "Doe"}.FullName())
	assert.Equal(t, "Doe", Record{LastName: "Doe"}.FullName())
}

func TestOverview_GenderCount(t *testing.T) {
	o := Overview{GenderStats: []GroupCount{{Key: "Male", Count: 4}}}
	assert.Equal(t, 4, o.GenderCount("Male"))
	assert.Equal(t, 0, o.GenderCount("Female"))
}

func TestIsDefaultLocation(t *testing.T) {
	assert.True(t, IsDefaultLocation("Main"))
	assert.False(t, IsDefaultLocation("Block C"))
}
