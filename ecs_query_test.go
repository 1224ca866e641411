package blossom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuery_Map(t *testing.T) {
	type Comp1 struct{ a int }
	type Comp2 struct{ b float32 }
	type Comp3 struct{}

	ecs := MakeEcs()
	ecs.addEntity(Comp1{a: 1})                                 // comp1 only                       -- shouldn't match
	id2 := ecs.addEntity(Comp1{a: 2}, Comp2{b: 1.37})          // comp1 & comp2                    -- should match
	id3 := ecs.addEntity(Comp1{a: 3}, Comp2{b: 4.20}, Comp3{}) // comp1 & comp2 + something extra  -- should match
	ecs.addEntity(Comp1{a: 4}, Comp3{})                        // comp1 + something extra          -- shouldn't match
	ecs.addEntity(Comp2{b: 3.14})                              // comp2 only                       -- shouldn't match

	query := Query2[Comp1, Comp2]{ecs: ecs}

	var gotIds []EntityId
	var gotA []Comp1
	query.Map(func(entityId EntityId, comp1 *Comp1, comp2 *Comp2) bool {
		gotIds = append(gotIds, entityId)
		gotA = append(gotA, *comp1)
		return true
	})

	assert.Equal(t, []EntityId{id2, id3}, gotIds, "archetypes are visited in creation order")
	assert.Equal(t, []Comp1{{a: 2}, {a: 3}}, gotA)
}

func TestQuery_MapMutatesAndStops(t *testing.T) {
	type Counter struct{ n int }

	ecs := MakeEcs()
	for i := 0; i < 5; i++ {
		ecs.addEntity(Counter{n: i})
	}

	visited := 0
	Query1[Counter]{ecs: ecs}.Map(func(_ EntityId, c *Counter) bool {
		c.n += 10
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)

	var values []int
	Query1[Counter]{ecs: ecs}.Map(func(_ EntityId, c *Counter) bool {
		values = append(values, c.n)
		return true
	})
	assert.Equal(t, []int{10, 11, 12, 3, 4}, values)
}

func TestQuery3_RequiresAll(t *testing.T) {
	type A struct{ v int }
	type B struct{}
	type C struct{}

	ecs := MakeEcs()
	ecs.addEntity(A{1}, B{})
	want := ecs.addEntity(A{2}, B{}, C{})

	var got []EntityId
	Query3[A, B, C]{ecs: ecs}.Map(func(id EntityId, a *A, _ *B, _ *C) bool {
		got = append(got, id)
		return true
	})
	assert.Equal(t, []EntityId{want}, got)
}
