package lox

import (
	"fmt"
	"io"
	"math"
)

// Interpreter evaluates the given syntax tree. This struct implements both
// ExprVisitor and StmtVisitor. Variable references that the resolver found in
// a local scope are read through the locals side table; everything else goes
// to the globals environment.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[Expr]int
	output      io.Writer
	reporter    Reporter
	isREPL      bool
}

func NewInterpreter(output io.Writer, reporter Reporter, isREPL bool) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", &loxNativeFnClock{})
	in := new(Interpreter)
	in.globals = globals
	in.environment = globals
	in.locals = make(map[Expr]int)
	in.output = output
	in.reporter = reporter
	in.isREPL = isREPL
	return in
}

// Interpret executes the statements in order. The first runtime error stops
// the run and is handed to the reporter.
func (in *Interpreter) Interpret(statements []Stmt) {
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			in.reporter.Report(err)
			break
		}
	}
}

// resolve records the scope distance of a variable reference. Nodes are
// compared by pointer, so each reference site gets its own entry.
func (in *Interpreter) resolve(expr Expr, steps int) {
	in.locals[expr] = steps
}

func (in *Interpreter) VisitBlockStmt(stmt *BlockStmt) (interface{}, error) {
	return nil, in.execBlock(stmt.Stmts, NewEnvironment(in.environment))
}

func (in *Interpreter) VisitClassStmt(stmt *ClassStmt) (interface{}, error) {
	var superclass *loxClass
	if stmt.Superclass != nil {
		superVal, err := in.eval(stmt.Superclass)
		if err != nil {
			return nil, err
		}
		var ok bool
		superclass, ok = superVal.(*loxClass)
		if !ok {
			return nil, NewRuntimeError(stmt.Superclass.Name,
				"Superclass must be a class.")
		}
	}

	// the class name is defined before the methods are built so they can
	// refer to the class itself
	in.environment.Define(stmt.Name.Lexeme, nil)

	environment := in.environment
	if superclass != nil {
		environment = NewEnvironment(environment)
		environment.Define("super", superclass)
	}

	methods := make(map[string]*loxFn)
	for _, method := range stmt.Methods {
		isInitializer := method.Name.Lexeme == "init"
		methods[method.Name.Lexeme] = newLoxFn(method, environment, isInitializer)
	}

	class := newLoxClass(stmt.Name.Lexeme, superclass, methods)
	if err := in.environment.Assign(stmt.Name, class); err != nil {
		return nil, err
	}
	return nil, nil
}

func (in *Interpreter) VisitExprStmt(stmt *ExprStmt) (interface{}, error) {
	val, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	if in.isREPL {
		if _, ok := stmt.Expr.(*AssignExpr); !ok {
			fmt.Fprintln(in.output, stringify(val))
		}
	}
	return nil, nil
}

func (in *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error) {
	fn := newLoxFn(stmt, in.environment, false)
	in.environment.Define(stmt.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitIfStmt(stmt *IfStmt) (interface{}, error) {
	cond, err := in.eval(stmt.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return in.exec(stmt.ThenBranch)
	}
	if stmt.ElseBranch != nil {
		return in.exec(stmt.ElseBranch)
	}
	return nil, nil
}

func (in *Interpreter) VisitPrintStmt(stmt *PrintStmt) (interface{}, error) {
	val, err := in.eval(stmt.Expr)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(in.output, stringify(val))
	return nil, nil
}

func (in *Interpreter) VisitReturnStmt(stmt *ReturnStmt) (interface{}, error) {
	var val interface{}
	if stmt.Val != nil {
		var err error
		val, err = in.eval(stmt.Val)
		if err != nil {
			return nil, err
		}
	}
	return nil, newLoxReturn(val)
}

func (in *Interpreter) VisitVarStmt(stmt *VarStmt) (interface{}, error) {
	var initVal interface{}
	if stmt.Init != nil {
		var err error
		initVal, err = in.eval(stmt.Init)
		if err != nil {
			return nil, err
		}
	}
	in.environment.Define(stmt.Name.Lexeme, initVal)
	return nil, nil
}

func (in *Interpreter) VisitWhileStmt(stmt *WhileStmt) (interface{}, error) {
	for {
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}
		if _, err := in.exec(stmt.Body); err != nil {
			return nil, err
		}
	}
}

func (in *Interpreter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	val, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}
	if steps, ok := in.locals[expr]; ok {
		in.environment.AssignAt(steps, expr.Name, val)
	} else if err := in.globals.Assign(expr.Name, val); err != nil {
		return nil, err
	}
	return val, nil
}

func (in *Interpreter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case BANG_EQUAL:
		return lhs != rhs, nil

	case EQUAL_EQUAL:
		return lhs == rhs, nil

	case GREATER:
		leftNum, rightNum, err := numberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum > rightNum, nil

	case GREATER_EQUAL:
		leftNum, rightNum, err := numberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum >= rightNum, nil

	case LESS:
		leftNum, rightNum, err := numberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum < rightNum, nil

	case LESS_EQUAL:
		leftNum, rightNum, err := numberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum <= rightNum, nil

	case MINUS:
		leftNum, rightNum, err := numberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum - rightNum, nil

	case PLUS:
		leftNum, okLeftNum := lhs.(float64)
		rightNum, okRightNum := rhs.(float64)
		if okLeftNum && okRightNum {
			return leftNum + rightNum, nil
		}
		// a string on either side concatenates the display of both
		_, okLeftStr := lhs.(string)
		_, okRightStr := rhs.(string)
		if okLeftStr || okRightStr {
			return stringify(lhs) + stringify(rhs), nil
		}
		return nil, NewRuntimeError(expr.Op,
			"Operands must be two numbers or two strings.")

	case SLASH:
		// follows IEEE-754, a zero divisor gives Infinity or NaN
		leftNum, rightNum, err := numberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum / rightNum, nil

	case STAR:
		leftNum, rightNum, err := numberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return leftNum * rightNum, nil

	case PERCENT:
		leftNum, rightNum, err := numberOperands(expr.Op, lhs, rhs)
		if err != nil {
			return nil, err
		}
		return math.Mod(leftNum, rightNum), nil
	}
	panic("Unreachable")
}

func (in *Interpreter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	callee, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, 0, len(expr.Args))
	for _, argExpr := range expr.Args {
		arg, err := in.eval(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	callable, ok := callee.(loxCallable)
	if !ok {
		return nil, NewRuntimeError(expr.Paren,
			"Can only call functions and classes.")
	}
	if len(args) != callable.arity() {
		msg := fmt.Sprintf("Expected %d arguments but got %d.",
			callable.arity(), len(args))
		return nil, NewRuntimeError(expr.Paren, msg)
	}
	return callable.call(in, args)
}

func (in *Interpreter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	object, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	if instance, ok := object.(*loxInstance); ok {
		return instance.get(expr.Name)
	}
	return nil, NewRuntimeError(expr.Name, "Only instances have properties.")
}

func (in *Interpreter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	return in.eval(expr.Expression)
}

func (in *Interpreter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	return expr.Value, nil
}

func (in *Interpreter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	lhs, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case OR:
		if isTruthy(lhs) {
			return lhs, nil
		}
	case AND:
		if !isTruthy(lhs) {
			return lhs, nil
		}
	default:
		panic("Unreachable")
	}

	return in.eval(expr.Right)
}

func (in *Interpreter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	object, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*loxInstance)
	if !ok {
		return nil, NewRuntimeError(expr.Name, "Only instances have fields.")
	}
	val, err := in.eval(expr.Val)
	if err != nil {
		return nil, err
	}
	instance.set(expr.Name, val)
	return val, nil
}

func (in *Interpreter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	steps := in.locals[expr]
	superclass := in.environment.GetAt(steps, "super").(*loxClass)
	// 'this' is always bound one scope inside the one holding 'super'
	instance := in.environment.GetAt(steps-1, "this").(*loxInstance)

	method := superclass.findMethod(expr.Method.Lexeme)
	if method == nil {
		msg := fmt.Sprintf("Undefined property '%s'.", expr.Method.Lexeme)
		return nil, NewRuntimeError(expr.Method, msg)
	}
	return method.bind(instance), nil
}

func (in *Interpreter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return in.lookUpVariable(expr.Keyword, expr)
}

func (in *Interpreter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	val, err := in.eval(expr.Expression)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Typ {
	case BANG:
		return !isTruthy(val), nil
	case MINUS:
		if num, ok := val.(float64); ok {
			return -num, nil
		}
		return nil, NewRuntimeError(expr.Op, "Operand must be a number.")
	}
	panic("Unreachable")
}

func (in *Interpreter) VisitVariableExpr(expr *VariableExpr) (interface{}, error) {
	return in.lookUpVariable(expr.Name, expr)
}

func (in *Interpreter) lookUpVariable(name *Token, expr Expr) (interface{}, error) {
	if steps, ok := in.locals[expr]; ok {
		return in.environment.GetAt(steps, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

// execBlock runs the statements against the given environment. The previous
// environment is restored on every exit path, including a return unwind or a
// runtime error propagating through.
func (in *Interpreter) execBlock(statements []Stmt, environment *Environment) error {
	prev := in.environment
	in.environment = environment
	defer func() {
		in.environment = prev
	}()
	for _, stmt := range statements {
		if _, err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(stmt Stmt) (interface{}, error) {
	return stmt.Accept(in)
}

func (in *Interpreter) eval(expr Expr) (interface{}, error) {
	return expr.Accept(in)
}

func numberOperands(op *Token, lhs, rhs interface{}) (float64, float64, error) {
	leftNum, okLeft := lhs.(float64)
	rightNum, okRight := rhs.(float64)
	if !okLeft || !okRight {
		return 0, 0, NewRuntimeError(op, "Operands must be numbers.")
	}
	return leftNum, rightNum, nil
}
