package blossom

import (
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type App struct {
	stateful           bool
	stateTransitioning bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	frame              uint64

	stages    []Stage
	systems   map[string]*stageSystems
	resources map[reflect.Type]any
	ecs       *Ecs
	logger    Logger

	pendingAdditions []pendingAdd
	pendingRemovals  []EntityId
	pendingCompAdds  []pendingAdd
}

type pendingAdd struct {
	eid        EntityId
	components []any
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

func (app *App) State() State  { return app.state }
func (app *App) Frame() uint64 { return app.frame }

// Run drives the schedule frame by frame. A stateful app returns once the final
// state is reached and its exit systems have run.
func (app *App) Run() {
	log := app.Logger()
	if app.stateful {
		log.Debugf("running in stateful mode, state %v", app.initialState)
		app.state = app.initialState
		app.callSystems(app.state, enter)
	} else {
		log.Debugf("running in stateless mode")
	}

	for {
		app.callSystems(app.state, execute)
		app.frame++

		if !app.stateful {
			continue
		}
		if app.stateTransitioning {
			app.stateTransitioning = false
			app.executeChangeState(app.nextState)
		}
		if app.state == app.finalState {
			app.callSystems(app.state, exit)
			log.Debugf("reached final state after %d frames", app.frame)
			return
		}
	}
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		systems := app.systems[stage.Name]
		if phase == execute {
			for _, system := range systems.always {
				app.callSystem(system)
			}
		}
		if app.stateful {
			for _, system := range systems.states[state][phase] {
				app.callSystem(system)
			}
		}
		app.FlushCommands()
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

func (app *App) hasResource(t reflect.Type) bool {
	_, ok := app.resources[t]
	return ok
}

var (
	typeOfCommands = reflect.TypeOf(Commands{})
	typeOfLogger   = reflect.TypeOf((*Logger)(nil)).Elem()
)

// callSystem resolves every argument of system by type: *Commands, the Logger
// interface, or a pointer to a registered resource.
func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := range args {
		argType := systemType.In(i)
		switch {
		case argType == typeOfLogger:
			args[i] = reflect.ValueOf(app.Logger())
		case argType.Kind() == reflect.Pointer && argType.Elem() == typeOfCommands:
			args[i] = reflect.ValueOf(app.Commands())
		case argType.Kind() == reflect.Pointer && app.hasResource(argType.Elem()):
			args[i] = reflect.ValueOf(app.resources[argType.Elem()])
		default:
			panic(fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				systemType,
				argType,
			))
		}
	}
	systemValue.Call(args)
}

// FlushCommands applies buffered entity changes: removals first, then new
// entities, then component additions.
func (app *App) FlushCommands() {
	if len(app.pendingAdditions) == 0 && len(app.pendingRemovals) == 0 && len(app.pendingCompAdds) == 0 {
		return
	}

	for _, eid := range app.pendingRemovals {
		app.ecs.removeEntity(eid)
	}
	app.pendingRemovals = app.pendingRemovals[:0]

	for _, add := range app.pendingAdditions {
		app.ecs.insertEntity(add.eid, add.components...)
	}
	app.pendingAdditions = app.pendingAdditions[:0]

	for _, add := range app.pendingCompAdds {
		app.ecs.addComponents(add.eid, add.components...)
	}
	app.pendingCompAdds = app.pendingCompAdds[:0]
}
