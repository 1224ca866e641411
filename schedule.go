package blossom

import (
	"fmt"
	"slices"
)

type State int

const (
	StateRunning State = iota
	StateExit
)

type Stage struct {
	Name string
}

var (
	Prelude    = Stage{Name: "Prelude"}
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
	PreRender  = Stage{Name: "PreRender"}
	Render     = Stage{Name: "Render"}
	PostRender = Stage{Name: "PostRender"}
	Finale     = Stage{Name: "Finale"}
)

func defaultStages() []Stage {
	return []Stage{Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender, Finale}
}

type statePhase int

const (
	enter statePhase = iota
	execute
	exit
)

type stateScheduleBuilder struct {
	state State
	phase statePhase
}

func OnEnter(state State) stateScheduleBuilder {
	return stateScheduleBuilder{state: state, phase: enter}
}
func OnExecute(state State) stateScheduleBuilder {
	return stateScheduleBuilder{state: state, phase: execute}
}
func OnExit(state State) stateScheduleBuilder { return stateScheduleBuilder{state: state, phase: exit} }

type systemScheduleBuilder struct {
	system        systemFn
	inStage       Stage
	inState       stateScheduleBuilder
	stateProvided bool
}

// System wraps a system function for scheduling. Without InState it runs on
// every frame regardless of state.
func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{system: system, inStage: Update}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	sched.inStage = s
	return sched
}

func (sched systemScheduleBuilder) InState(s stateScheduleBuilder) systemScheduleBuilder {
	sched.inState = s
	sched.stateProvided = true
	return sched
}

func (sched systemScheduleBuilder) RunAlways() systemScheduleBuilder {
	sched.stateProvided = false
	return sched
}

type stageSystems struct {
	always []systemFn
	states map[State]map[statePhase][]systemFn
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	idx := slices.IndexFunc(app.stages, func(s Stage) bool { return s.Name == system.inStage.Name })
	if idx < 0 {
		panic(fmt.Sprintf("Stage %v doesn't exist", system.inStage.Name))
	}
	stage := app.systems[system.inStage.Name]

	if !system.stateProvided {
		stage.always = append(stage.always, system.system)
		return app
	}
	if !app.stateful {
		panic("Trying to use a stateful system in a stateless app.")
	}
	st := system.inState.state
	if st < app.initialState || st > app.finalState {
		panic(fmt.Sprintf("State %v doesn't exist", st))
	}
	if stage.states[st] == nil {
		stage.states[st] = make(map[statePhase][]systemFn)
	}
	stage.states[st][system.inState.phase] = append(stage.states[st][system.inState.phase], system.system)
	return app
}

func (app *App) initStage(stage Stage) {
	app.systems[stage.Name] = &stageSystems{states: make(map[State]map[statePhase][]systemFn)}
}
