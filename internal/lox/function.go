package lox

import "fmt"

// loxFn represents a function declared in the script. It captures the
// environment that was active at its declaration site so the body can keep
// reaching the surrounding bindings after the declaring scope has exited.
type loxFn struct {
	decl          *FunctionStmt
	closure       *Environment
	isInitializer bool
}

func newLoxFn(decl *FunctionStmt, closure *Environment, isInitializer bool) *loxFn {
	fn := new(loxFn)
	fn.decl = decl
	fn.closure = closure
	fn.isInitializer = isInitializer
	return fn
}

func (fn *loxFn) arity() int {
	return len(fn.decl.Params)
}

func (fn *loxFn) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	/*
		A function encapsulates its parameters, which means each function gets its
		own environment where it stores the encapsulated variables. Each function
		call dynamically creates a new environment, otherwise, recursion would break.
		If there are multiple calls to the same function in play at the same time,
		each needs its own environment, even though they are all calls to the same
		function.
	*/
	env := NewEnvironment(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := in.execBlock(fn.decl.Body, env); err != nil {
		if ret, ok := err.(*loxReturn); ok {
			if fn.isInitializer {
				return fn.closure.GetAt(0, "this"), nil
			}
			return ret.val, nil
		}
		return nil, err
	}
	if fn.isInitializer {
		return fn.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// bind returns a copy of the function whose closure holds 'this' for the
// given instance. A fresh environment is created per access, so the binding
// never persists in the instance itself.
func (fn *loxFn) bind(instance *loxInstance) *loxFn {
	env := NewEnvironment(fn.closure)
	env.Define("this", instance)
	return newLoxFn(fn.decl, env, fn.isInitializer)
}

func (fn *loxFn) String() string {
	return fmt.Sprintf("<fn %s>", fn.decl.Name.Lexeme)
}
