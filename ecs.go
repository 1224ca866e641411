package blossom

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"reflect"
	"slices"
	"sync"
)

type EntityId uint64
type archetypeId uint64
type componentId uint32

// archetypeKey is the sorted, deduplicated list of component ids of an archetype.
type archetypeKey []componentId

// archetype stores entities sharing one component set in dense columns.
// Row i of every column belongs to entities[i].
type archetype struct {
	id       archetypeId
	key      archetypeKey
	entities []EntityId
	columns  map[componentId]any // []T per component
}

type entityLocation struct {
	arch *archetype
	row  int
}

type Ecs struct {
	archetypes  map[archetypeId]*archetype
	archOrder   []*archetype // creation order, keeps query iteration stable
	entityIndex map[EntityId]entityLocation

	idLock          sync.Mutex
	entityIdCounter EntityId

	componentLock      sync.Mutex
	componentTypeIdMap map[reflect.Type]componentId
	componentIdTypeMap []reflect.Type
}

func MakeEcs() *Ecs {
	return &Ecs{
		archetypes:         make(map[archetypeId]*archetype),
		entityIndex:        make(map[EntityId]entityLocation),
		componentTypeIdMap: make(map[reflect.Type]componentId),
	}
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.nextEntityId(), components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	arch := ecs.getOrMakeArchetype(ecs.getArchetypeKey(components...))
	row := ecs.appendRow(arch, entityId)
	for _, component := range components {
		ecs.writeComponent(arch, row, component)
	}
	ecs.entityIndex[entityId] = entityLocation{arch: arch, row: row}
	return entityId
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	loc, ok := ecs.entityIndex[entityId]
	if !ok {
		return
	}
	ecs.swapRemove(loc.arch, loc.row)
	delete(ecs.entityIndex, entityId)
}

// addComponents moves the entity into the archetype extended by components.
// Components already present are overwritten in place.
func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	src, ok := ecs.entityIndex[entityId]
	if !ok {
		panic(fmt.Sprintf("entity %d does not exist", entityId))
	}
	dstKey := dedupAndSortArchetypeKey(append(slices.Clone(src.arch.key), ecs.getArchetypeKey(components...)...))
	dst := ecs.getOrMakeArchetype(dstKey)
	if dst == src.arch {
		for _, component := range components {
			ecs.writeComponent(dst, src.row, component)
		}
		return
	}

	row := ecs.appendRow(dst, entityId)
	for _, cid := range src.arch.key {
		reflectSliceSet(dst.columns[cid], row, reflectSliceGet(src.arch.columns[cid], src.row))
	}
	for _, component := range components {
		ecs.writeComponent(dst, row, component)
	}
	ecs.swapRemove(src.arch, src.row)
	ecs.entityIndex[entityId] = entityLocation{arch: dst, row: row}
}

func (ecs *Ecs) hasEntity(entityId EntityId) bool {
	_, ok := ecs.entityIndex[entityId]
	return ok
}

func (ecs *Ecs) appendRow(arch *archetype, entityId EntityId) int {
	for _, cid := range arch.key {
		arch.columns[cid] = reflectSliceAppend(arch.columns[cid], reflect.Zero(ecs.componentIdTypeMap[cid]))
	}
	arch.entities = append(arch.entities, entityId)
	return len(arch.entities) - 1
}

// swapRemove deletes row by moving the last row into it.
func (ecs *Ecs) swapRemove(arch *archetype, row int) {
	last := len(arch.entities) - 1
	if row != last {
		moved := arch.entities[last]
		arch.entities[row] = moved
		for _, cid := range arch.key {
			reflectSliceSet(arch.columns[cid], row, reflectSliceGet(arch.columns[cid], last))
		}
		ecs.entityIndex[moved] = entityLocation{arch: arch, row: row}
	}
	arch.entities = arch.entities[:last]
	for _, cid := range arch.key {
		arch.columns[cid] = reflectSliceTruncate(arch.columns[cid], last)
	}
}

func (ecs *Ecs) writeComponent(arch *archetype, row int, component any) {
	value := reflect.ValueOf(component)
	if value.Kind() == reflect.Pointer {
		value = value.Elem()
	}
	reflectSliceSet(arch.columns[ecs.getComponentId(value.Type())], row, value)
}

func (ecs *Ecs) getOrMakeArchetype(key archetypeKey) *archetype {
	id := getArchetypeId(key)
	if arch, ok := ecs.archetypes[id]; ok {
		return arch
	}

	arch := &archetype{
		id:      id,
		key:     key,
		columns: make(map[componentId]any, len(key)),
	}
	for _, cid := range key {
		arch.columns[cid] = reflectSliceMake(ecs.componentIdTypeMap[cid])
	}
	ecs.archetypes[id] = arch
	ecs.archOrder = append(ecs.archOrder, arch)
	return arch
}

func (ecs *Ecs) getArchetypeKey(components ...any) archetypeKey {
	key := make(archetypeKey, 0, len(components))
	for _, component := range components {
		compType := reflect.TypeOf(component)
		if compType.Kind() == reflect.Pointer {
			compType = compType.Elem()
		}
		if compType.Kind() != reflect.Struct {
			panic(fmt.Sprintf("component should be a struct, got %s", compType))
		}
		key = append(key, ecs.getComponentId(compType))
	}
	return dedupAndSortArchetypeKey(key)
}

func dedupAndSortArchetypeKey(key archetypeKey) archetypeKey {
	slices.Sort(key)
	return slices.Compact(key)
}

// getArchetypeId hashes the key. Ids are only a lookup shortcut; the key is
// what defines an archetype.
func getArchetypeId(key archetypeKey) archetypeId {
	hash := fnv.New64a()
	var b [4]byte
	for _, cid := range key {
		binary.LittleEndian.PutUint32(b[:], uint32(cid))
		hash.Write(b[:])
	}
	return archetypeId(hash.Sum64())
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idLock.Lock()
	defer ecs.idLock.Unlock()
	id := ecs.entityIdCounter
	ecs.entityIdCounter++
	return id
}

func (ecs *Ecs) getComponentId(componentType reflect.Type) componentId {
	ecs.componentLock.Lock()
	defer ecs.componentLock.Unlock()

	if id, ok := ecs.componentTypeIdMap[componentType]; ok {
		return id
	}
	id := componentId(len(ecs.componentIdTypeMap))
	ecs.componentTypeIdMap[componentType] = id
	ecs.componentIdTypeMap = append(ecs.componentIdTypeMap, componentType)
	return id
}
