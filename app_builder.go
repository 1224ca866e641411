package blossom

import (
	"reflect"
)

// Module installs resources, entities and systems into an App.
type Module interface {
	Install(app *App, cmd *Commands)
}

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	app := &App{
		resources: make(map[reflect.Type]any),
		systems:   make(map[string]*stageSystems),
		ecs:       MakeEcs(),
	}
	for _, stage := range defaultStages() {
		app.stages = append(app.stages, stage)
		app.initStage(stage)
	}
	return &AppBuilder{app: app}
}

func (b *AppBuilder) UseStates(initialState State, finalState State) *AppBuilder {
	b.app.stateful = true
	b.app.initialState = initialState
	b.app.finalState = finalState
	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

// Build installs every module in order and applies the entities they spawned.
func (b *AppBuilder) Build() *App {
	app := b.app
	cmd := app.Commands()
	for _, module := range b.modules {
		module.Install(app, cmd)
	}
	app.FlushCommands()
	return app
}
