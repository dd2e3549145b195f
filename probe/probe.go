package probe

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidProbeInput is returned when an invocation is requested with a nil self reference.
// No probe is called in that case.
var ErrInvalidProbeInput = errors.New("invalid probe input")

// Sink receives diagnostic lines. Anything with a Printf method works, including the
// framework's loggers and the standard library's *log.Logger.
type Sink interface {
	Printf(format string, args ...interface{})
}

type nullSink struct{}

func (nullSink) Printf(string, ...interface{}) {}

// Layer is a forwarding layer placed between the invoker and the probe bodies. Each method
// receives the next function in the chain and returns the function the invoker will call.
type Layer interface {
	Instance(next InstanceFunc) InstanceFunc
	Static(next StaticFunc) StaticFunc
}

// Probe holds the two probe entry points, already wrapped by a layer, and where their reports
// go. It is immutable after New, so it may be shared between goroutines.
type Probe struct {
	instance InstanceFunc
	static   StaticFunc
	sink     Sink
	handler  func(Report)
}

// New creates a Probe. If layer is nil the probe bodies are called directly. If sink is nil the
// diagnostic lines are discarded. If handler is non-nil it is called with every Report, from the
// goroutine that made the invocation.
func New(layer Layer, sink Sink, handler func(Report)) *Probe {
	if sink == nil {
		sink = nullSink{}
	}
	p := &Probe{sink: sink, handler: handler}
	p.instance = InstanceFuncOf(p.instanceBody)
	p.static = StaticFuncOf(p.staticBody)
	if layer != nil {
		p.instance = layer.Instance(p.instance)
		p.static = layer.Static(p.static)
	}
	return p
}

// InvokeInstance calls the instance probe with self as the receiver and the canonical argument
// set built from self and mask. It returns whatever the probe returned, which is the receiver
// if the layer preserved it.
func (p *Probe) InvokeInstance(self interface{}, mask uint64) (interface{}, error) {
	if IsNilReference(self) {
		return nil, fmt.Errorf("%w: self reference for %s must not be nil", ErrInvalidProbeInput, InstanceVariant.ProbeName())
	}
	return p.instance.CallWith(self, Canonical(self, mask)), nil
}

// InvokeStatic calls the static probe with the canonical argument set built from self and mask.
func (p *Probe) InvokeStatic(self interface{}, mask uint64) error {
	if IsNilReference(self) {
		return fmt.Errorf("%w: self reference for %s must not be nil", ErrInvalidProbeInput, StaticVariant.ProbeName())
	}
	p.static.CallWith(Canonical(self, mask))
	return nil
}

func (p *Probe) instanceBody(recv interface{}, a Args) interface{} {
	p.emit(Verify(InstanceVariant, a))
	return recv
}

func (p *Probe) staticBody(a Args) {
	p.emit(Verify(StaticVariant, a))
}

func (p *Probe) emit(r Report) {
	for _, line := range r.Lines() {
		p.sink.Printf("%s", line)
	}
	if p.handler != nil {
		p.handler(r)
	}
}

// IsNilReference is true for an untyped nil and for a typed nil pointer, map, slice, channel,
// function or interface.
func IsNilReference(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// SameReference reports whether a and b are the same reference: the same pointer, map, slice
// header start, channel or function for reference kinds, and equal values otherwise.
func SameReference(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Ptr, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}
	if !ra.Type().Comparable() {
		return false
	}
	return a == b
}
