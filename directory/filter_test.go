package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terre-server/models/business"
)

func sampleList() []business.Business {
	return []business.Business{
		{ID: "w1", Category: business.CategoryWinery},
		{ID: "f1", Category: business.CategoryFarmStay},
		{ID: "w2", Category: business.CategoryWinery},
		{ID: "r1", Category: business.CategoryRestaurant},
	}
}

func TestFilterByCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantIDs  []string
	}{
		{"all marker", business.CategoryAll, []string{"w1", "f1", "w2", "r1"}},
		{"english all", "all", []string{"w1", "f1", "w2", "r1"}},
		{"wineries keep order", string(business.CategoryWinery), []string{"w1", "w2"}},
		{"no match", string(business.CategoryProducer), []string{}},
		{"case sensitive", "cantina", []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := FilterByCategory(sampleList(), test.category)
			ids := []string{}
			for _, b := range got {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, test.wantIDs, ids)
		})
	}
}

func TestFilterByCategory_Idempotent(t *testing.T) {
	once := FilterByCategory(sampleList(), string(business.CategoryWinery))
	twice := FilterByCategory(once, string(business.CategoryWinery))

	assert.Equal(t, once, twice)
}

func TestFilterByCategory_DoesNotMutateSource(t *testing.T) {
	source := sampleList()
	snapshot := sampleList()

	_ = FilterByCategory(source, string(business.CategoryFarmStay))

	assert.Equal(t, snapshot, source)
}

func TestFindByID(t *testing.T) {
	list := sampleList()

	assert.Equal(t, "f1", FindByID(list, "f1").ID)
	assert.Nil(t, FindByID(list, "missing"))
}
