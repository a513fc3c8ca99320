// Package needs compiles the need triggers from tuning into expr programs.
//
// A trigger is a boolean expression over a pawn's vitals, e.g. "rest < 5".
package needs

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"tinycolony.dev/internal/sim/tuning"
)

// Vitals is the expression environment.
type Vitals struct {
	Hunger   float64 `expr:"hunger"`
	Rest     float64 `expr:"rest"`
	Carrying bool    `expr:"carrying"`
	State    string  `expr:"state"`
}

type Trigger struct {
	Src     string
	program *vm.Program
}

// Eval reports whether the trigger fires. A runtime error counts as not firing.
func (t *Trigger) Eval(v Vitals) bool {
	if t == nil || t.program == nil {
		return false
	}
	out, err := vm.Run(t.program, v)
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}

type Triggers struct {
	CriticalFatigue *Trigger
	Hungry          *Trigger
}

func Compile(cfg tuning.NeedTriggers) (Triggers, error) {
	var out Triggers
	var err error
	if out.CriticalFatigue, err = compileOne("critical_fatigue", cfg.CriticalFatigue); err != nil {
		return Triggers{}, err
	}
	if out.Hungry, err = compileOne("hungry", cfg.Hungry); err != nil {
		return Triggers{}, err
	}
	return out, nil
}

// MustDefaults compiles the default triggers; they are known to be valid.
func MustDefaults() Triggers {
	t, err := Compile(tuning.Defaults().Needs)
	if err != nil {
		panic(err)
	}
	return t
}

func compileOne(name, src string) (*Trigger, error) {
	if src == "" {
		return &Trigger{}, nil
	}
	prog, err := expr.Compile(src, expr.Env(Vitals{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("needs.%s: %w", name, err)
	}
	return &Trigger{Src: src, program: prog}, nil
}
