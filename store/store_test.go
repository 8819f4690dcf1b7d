package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terre-server/models/business"
)

func testBusinesses() []business.Business {
	return []business.Business{
		{ID: "w1", Name: "Cantina Uno", Category: business.CategoryWinery, Lat: business.Coord(45.95), Lng: business.Coord(13.47)},
		{ID: "f1", Name: "Agriturismo Due", Category: business.CategoryFarmStay, Lat: business.Coord(46.1), Lng: business.Coord(13.2)},
		{ID: "w2", Name: "Cantina Tre", Category: business.CategoryWinery},
	}
}

func loadedState(width int) State {
	return Reduce(InitialState(width, time.Time{}), Loaded{Businesses: testBusinesses()})
}

func TestInitialState(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		listOpen bool
	}{
		{"unknown width", 0, true},
		{"desktop", 1280, true},
		{"exactly breakpoint", 768, false},
		{"mobile", 375, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := InitialState(tt.width, time.Time{})
			assert.Equal(t, tt.listOpen, s.ListOpen)
			assert.Equal(t, business.CategoryAll, s.Category)
			assert.True(t, s.Loading)
		})
	}
}

func TestReduce_Loaded(t *testing.T) {
	s := Reduce(InitialState(0, time.Time{}), Loaded{Businesses: testBusinesses(), UsedFallback: true})

	assert.False(t, s.Loading)
	assert.True(t, s.UsedFallback)
	assert.Len(t, s.Businesses, 3)
}

func TestReduce_Select(t *testing.T) {
	s := Reduce(loadedState(1280), Select{BusinessID: "f1", Source: SourceList})
	require.NotNil(t, s.Selected())
	assert.Equal(t, "Agriturismo Due", s.Selected().Name)
	assert.True(t, s.ListOpen)

	s = Reduce(s, Select{BusinessID: "missing", Source: SourceMap})
	assert.Equal(t, "f1", s.SelectedID)

	s = Reduce(s, CloseDetail{})
	assert.Nil(t, s.Selected())
}

func TestReduce_Select_NarrowViewportClosesList(t *testing.T) {
	s := loadedState(375)
	s = Reduce(s, ToggleList{})
	require.True(t, s.ListOpen)

	s = Reduce(s, Select{BusinessID: "w1", Source: SourceList})

	assert.Equal(t, "w1", s.SelectedID)
	assert.False(t, s.ListOpen)
}

func TestReduce_Select_MapIgnoresFilter(t *testing.T) {
	s := Reduce(loadedState(1280), ChangeCategory{Category: string(business.CategoryWinery)})

	fromList := Reduce(s, Select{BusinessID: "f1", Source: SourceList})
	assert.Empty(t, fromList.SelectedID)

	fromMap := Reduce(s, Select{BusinessID: "f1", Source: SourceMap})
	assert.Equal(t, "f1", fromMap.SelectedID)
}

func TestReduce_ChangeCategory(t *testing.T) {
	s := Reduce(loadedState(1280), Select{BusinessID: "w1", Source: SourceList})

	kept := Reduce(s, ChangeCategory{Category: string(business.CategoryWinery)})
	assert.Equal(t, "w1", kept.SelectedID)
	assert.Len(t, kept.Visible(), 2)

	cleared := Reduce(s, ChangeCategory{Category: string(business.CategoryFarmStay)})
	assert.Empty(t, cleared.SelectedID)
	assert.Len(t, cleared.Visible(), 1)

	all := Reduce(cleared, ChangeCategory{Category: "all"})
	assert.Equal(t, business.CategoryAll, all.Category)
	assert.Len(t, all.Visible(), 3)
}

func TestReduce_Resize(t *testing.T) {
	s := loadedState(1280)
	require.True(t, s.ListOpen)

	s = Reduce(s, Resize{Width: 600})
	assert.False(t, s.ListOpen)

	s = Reduce(s, ToggleList{})
	s = Reduce(s, Resize{Width: 500})
	assert.True(t, s.ListOpen, "resizing within the narrow range keeps the drawer as is")

	s = Reduce(s, ToggleList{})
	s = Reduce(s, Resize{Width: 1024})
	assert.True(t, s.ListOpen)
}

func TestReduce_ChatAndTick(t *testing.T) {
	now := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	s := Reduce(loadedState(0), OpenChat{})
	assert.True(t, s.ChatOpen)

	s = Reduce(s, CloseChat{})
	assert.False(t, s.ChatOpen)

	s = Reduce(s, Tick{Now: now})
	assert.Equal(t, now, s.Now)
}

func TestReduce_DoesNotMutateBusinesses(t *testing.T) {
	list := testBusinesses()
	s := Reduce(InitialState(0, time.Time{}), Loaded{Businesses: list})
	s = Reduce(s, ChangeCategory{Category: string(business.CategoryFarmStay)})
	_ = s.Visible()

	assert.Equal(t, testBusinesses(), list)
}

func TestStore_SubscribersInOrder(t *testing.T) {
	st := NewStore(InitialState(0, time.Time{}))

	var calls []string
	st.Subscribe(func(s State) { calls = append(calls, "first:"+s.SelectedID) })
	unsubscribe := st.Subscribe(func(s State) { calls = append(calls, "second:"+s.SelectedID) })

	st.Dispatch(Loaded{Businesses: testBusinesses()})
	st.Dispatch(Select{BusinessID: "w2", Source: SourceMap})

	assert.Equal(t, []string{"first:", "second:", "first:w2", "second:w2"}, calls)

	unsubscribe()
	st.Dispatch(CloseDetail{})
	assert.Equal(t, "first:", calls[len(calls)-1])
	assert.Len(t, calls, 5)
	assert.Empty(t, st.State().SelectedID)
}

func TestName(t *testing.T) {
	assert.Equal(t, "select", Name(Select{}))
	assert.Equal(t, "close", Name(CloseDetail{}))
	assert.Equal(t, "", Name(nil))
}
