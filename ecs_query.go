package blossom

import "reflect"

type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

func componentIdOf[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeFor[T]())
}

// matching yields, in creation order, every archetype holding all ids.
func (ecs *Ecs) matching(ids ...componentId) []*archetype {
	var res []*archetype
outer:
	for _, arch := range ecs.archOrder {
		if len(arch.entities) == 0 {
			continue
		}
		for _, id := range ids {
			if _, ok := arch.columns[id]; !ok {
				continue outer
			}
		}
		res = append(res, arch)
	}
	return res
}

// Map calls m for every entity with A until m returns false. Pointers are
// valid until the next command flush.
func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	id1 := componentIdOf[A](q.ecs)
	for _, arch := range q.ecs.matching(id1) {
		comps1 := arch.columns[id1].([]A)
		for row, eid := range arch.entities {
			if !m(eid, &comps1[row]) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	id1, id2 := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs)
	for _, arch := range q.ecs.matching(id1, id2) {
		comps1 := arch.columns[id1].([]A)
		comps2 := arch.columns[id2].([]B)
		for row, eid := range arch.entities {
			if !m(eid, &comps1[row], &comps2[row]) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	id1, id2, id3 := componentIdOf[A](q.ecs), componentIdOf[B](q.ecs), componentIdOf[C](q.ecs)
	for _, arch := range q.ecs.matching(id1, id2, id3) {
		comps1 := arch.columns[id1].([]A)
		comps2 := arch.columns[id2].([]B)
		comps3 := arch.columns[id3].([]C)
		for row, eid := range arch.entities {
			if !m(eid, &comps1[row], &comps2[row], &comps3[row]) {
				return
			}
		}
	}
}
