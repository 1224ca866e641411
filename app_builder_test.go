package blossom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, cmd *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_UseModule(t *testing.T) {
	var order []string
	first := &MockModule{order: &order, name: "first"}
	second := &MockModule{order: &order, name: "second"}

	NewAppBuilder().UseModule(first).UseModule(second).Build()

	if !first.installed || !second.installed {
		t.Errorf("modules should be installed on Build")
	}
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAppBuilder_UseStates(t *testing.T) {
	app := NewAppBuilder().UseStates(StateRunning, StateExit).Build()

	assert.True(t, app.stateful)
	assert.Equal(t, StateRunning, app.initialState)
	assert.Equal(t, StateExit, app.finalState)
	assert.Len(t, app.stages, len(defaultStages()))
	for _, stage := range defaultStages() {
		assert.Contains(t, app.systems, stage.Name)
	}
}

type spawnModule struct{}

type spawned struct{ v int }

func (spawnModule) Install(app *App, cmd *Commands) {
	cmd.AddEntity(spawned{v: 1})
}

func TestAppBuilder_BuildFlushesEntities(t *testing.T) {
	app := NewAppBuilder().UseModule(spawnModule{}).Build()

	count := 0
	MakeQuery1[spawned](app.Commands()).Map(func(_ EntityId, s *spawned) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}
