package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCityID(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"北京市", 131, true},
		{"上海市", 289, true},
		{"深圳", 340, true},
		{" 天津市 ", 332, true},
		{"成都市", 75, true},
		{"成都市市", 75, true},
		{"杭州市", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		id, ok := CityID(tt.name)
		assert.Equal(t, tt.wantOK, ok, "CityID(%q)", tt.name)
		assert.Equal(t, tt.want, id, "CityID(%q)", tt.name)
	}
}

func TestCities(t *testing.T) {
	list := Cities()
	assert.Len(t, list, 7)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID)
	}
	for _, c := range list {
		id, ok := CityID(c.Name)
		assert.True(t, ok, c.Name)
		assert.Equal(t, c.ID, id, c.Name)
	}
}
