package ports

import "github.com/aretw0/cadence/pkg/domain"

// Listener observes a loop at well-defined points. Open fires once before
// the first iteration and Close once after the loop terminates, on every
// exit path. Around each iteration the engine fires Before, then the
// callback, then After on success or OnError on failure.
//
// Registration order is significant: Open and Before run in registration
// order, After, OnError and Close in reverse, giving paired setup/teardown
// the nesting of scoped blocks. Errors raised by the callback reach
// OnError before the ExceptionHandler sees them; a listener that panics is
// a defect and is not routed through the handler.
type Listener interface {
	Open(scope *domain.Scope)
	Before(scope *domain.Scope)
	After(scope *domain.Scope, status domain.Status)
	OnError(scope *domain.Scope, err error)
	Close(scope *domain.Scope)
}

// Hooks adapts a bag of optional funcs into a Listener, so hosts can
// register closures without defining a type. Nil fields are skipped.
type Hooks struct {
	OnOpen      func(scope *domain.Scope)
	OnBefore    func(scope *domain.Scope)
	OnAfter     func(scope *domain.Scope, status domain.Status)
	OnIterError func(scope *domain.Scope, err error)
	OnClose     func(scope *domain.Scope)
}

func (h Hooks) Open(scope *domain.Scope) {
	if h.OnOpen != nil {
		h.OnOpen(scope)
	}
}

func (h Hooks) Before(scope *domain.Scope) {
	if h.OnBefore != nil {
		h.OnBefore(scope)
	}
}

func (h Hooks) After(scope *domain.Scope, status domain.Status) {
	if h.OnAfter != nil {
		h.OnAfter(scope, status)
	}
}

func (h Hooks) OnError(scope *domain.Scope, err error) {
	if h.OnIterError != nil {
		h.OnIterError(scope, err)
	}
}

func (h Hooks) Close(scope *domain.Scope) {
	if h.OnClose != nil {
		h.OnClose(scope)
	}
}
