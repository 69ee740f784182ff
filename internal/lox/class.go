package lox

import "fmt"

// loxClass is the runtime representation of a class declaration. Calling the
// class constructs an instance, running the 'init' method when one exists.
type loxClass struct {
	name       string
	superclass *loxClass
	methods    map[string]*loxFn
}

func newLoxClass(name string, superclass *loxClass, methods map[string]*loxFn) *loxClass {
	c := new(loxClass)
	c.name = name
	c.superclass = superclass
	c.methods = methods
	return c
}

// findMethod walks the superclass chain for the named method. The chain has
// no cycles since a class can never inherit from itself.
func (c *loxClass) findMethod(name string) *loxFn {
	if method, ok := c.methods[name]; ok {
		return method
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil
}

func (c *loxClass) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

func (c *loxClass) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	instance := newLoxInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(instance).call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *loxClass) String() string {
	return c.name
}

// loxInstance holds the mutable field set of one object. Fields shadow
// methods on property access.
type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

func newLoxInstance(class *loxClass) *loxInstance {
	instance := new(loxInstance)
	instance.class = class
	instance.fields = make(map[string]interface{})
	return instance
}

func (instance *loxInstance) get(name *Token) (interface{}, error) {
	if field, ok := instance.fields[name.Lexeme]; ok {
		return field, nil
	}
	if method := instance.class.findMethod(name.Lexeme); method != nil {
		return method.bind(instance), nil
	}
	msg := fmt.Sprintf("Undefined property '%s'.", name.Lexeme)
	return nil, NewRuntimeError(name, msg)
}

func (instance *loxInstance) set(name *Token, value interface{}) {
	instance.fields[name.Lexeme] = value
}

func (instance *loxInstance) String() string {
	return instance.class.name + " instance"
}
