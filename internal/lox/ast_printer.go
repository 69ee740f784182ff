package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// AstPrinter renders syntax trees as parenthesized prefix notation.
type AstPrinter struct{}

func (printer *AstPrinter) Print(expr Expr) string {
	s, _ := expr.Accept(printer)
	return fmt.Sprintf("%v", s)
}

// PrintProgram renders each top-level statement on its own line.
func (printer *AstPrinter) PrintProgram(statements []Stmt) string {
	var sb strings.Builder
	for _, stmt := range statements {
		s, _ := stmt.Accept(printer)
		fmt.Fprintf(&sb, "%v\n", s)
	}
	return sb.String()
}

func (printer *AstPrinter) VisitBlockStmt(stmt *BlockStmt) (interface{}, error) {
	var sb strings.Builder
	sb.WriteString("(block")
	for _, inner := range stmt.Stmts {
		s, _ := inner.Accept(printer)
		fmt.Fprintf(&sb, " %s", s)
	}
	sb.WriteString(")")
	return sb.String(), nil
}

func (printer *AstPrinter) VisitClassStmt(stmt *ClassStmt) (interface{}, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(class %s", stmt.Name.Lexeme)
	if stmt.Superclass != nil {
		fmt.Fprintf(&sb, " < %s", stmt.Superclass.Name.Lexeme)
	}
	for _, method := range stmt.Methods {
		s, _ := method.Accept(printer)
		fmt.Fprintf(&sb, " %s", s)
	}
	sb.WriteString(")")
	return sb.String(), nil
}

func (printer *AstPrinter) VisitExprStmt(stmt *ExprStmt) (interface{}, error) {
	s, _ := stmt.Expr.Accept(printer)
	return fmt.Sprintf("(; %s)", s), nil
}

func (printer *AstPrinter) VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(function %s (", stmt.Name.Lexeme)
	for i, param := range stmt.Params {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(param.Lexeme)
	}
	sb.WriteString(")")
	for _, inner := range stmt.Body {
		s, _ := inner.Accept(printer)
		fmt.Fprintf(&sb, " %s", s)
	}
	sb.WriteString(")")
	return sb.String(), nil
}

func (printer *AstPrinter) VisitIfStmt(stmt *IfStmt) (interface{}, error) {
	cond, _ := stmt.Cond.Accept(printer)
	thenBranch, _ := stmt.ThenBranch.Accept(printer)
	if stmt.ElseBranch == nil {
		return fmt.Sprintf("(if %s %s)", cond, thenBranch), nil
	}
	elseBranch, _ := stmt.ElseBranch.Accept(printer)
	return fmt.Sprintf("(if %s %s %s)", cond, thenBranch, elseBranch), nil
}

func (printer *AstPrinter) VisitPrintStmt(stmt *PrintStmt) (interface{}, error) {
	s, _ := stmt.Expr.Accept(printer)
	return fmt.Sprintf("(print %s)", s), nil
}

func (printer *AstPrinter) VisitReturnStmt(stmt *ReturnStmt) (interface{}, error) {
	if stmt.Val == nil {
		return "(return)", nil
	}
	s, _ := stmt.Val.Accept(printer)
	return fmt.Sprintf("(return %s)", s), nil
}

func (printer *AstPrinter) VisitVarStmt(stmt *VarStmt) (interface{}, error) {
	if stmt.Init == nil {
		return fmt.Sprintf("(var %s)", stmt.Name.Lexeme), nil
	}
	init, _ := stmt.Init.Accept(printer)
	return fmt.Sprintf("(var %s %s)", stmt.Name.Lexeme, init), nil
}

func (printer *AstPrinter) VisitWhileStmt(stmt *WhileStmt) (interface{}, error) {
	cond, _ := stmt.Cond.Accept(printer)
	body, _ := stmt.Body.Accept(printer)
	return fmt.Sprintf("(while %s %s)", cond, body), nil
}

func (printer *AstPrinter) VisitAssignExpr(expr *AssignExpr) (interface{}, error) {
	val, _ := expr.Val.Accept(printer)
	return fmt.Sprintf("(= %s %s)", expr.Name.Lexeme, val), nil
}

func (printer *AstPrinter) VisitBinaryExpr(expr *BinaryExpr) (interface{}, error) {
	left, _ := expr.Left.Accept(printer)
	right, _ := expr.Right.Accept(printer)
	return fmt.Sprintf("(%s %s %s)", expr.Op.Lexeme, left, right), nil
}

func (printer *AstPrinter) VisitCallExpr(expr *CallExpr) (interface{}, error) {
	var sb strings.Builder
	callee, _ := expr.Callee.Accept(printer)
	fmt.Fprintf(&sb, "(call %s", callee)
	for _, arg := range expr.Args {
		s, _ := arg.Accept(printer)
		fmt.Fprintf(&sb, " %s", s)
	}
	sb.WriteString(")")
	return sb.String(), nil
}

func (printer *AstPrinter) VisitGetExpr(expr *GetExpr) (interface{}, error) {
	object, _ := expr.Object.Accept(printer)
	return fmt.Sprintf("(get %s %s)", object, expr.Name.Lexeme), nil
}

func (printer *AstPrinter) VisitGroupingExpr(expr *GroupingExpr) (interface{}, error) {
	exprStr, _ := expr.Expression.Accept(printer)
	return fmt.Sprintf("(group %s)", exprStr), nil
}

func (printer *AstPrinter) VisitLiteralExpr(expr *LiteralExpr) (interface{}, error) {
	switch v := expr.Value.(type) {
	case nil:
		return "nil", nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case string:
		return strconv.Quote(v), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func (printer *AstPrinter) VisitLogicalExpr(expr *LogicalExpr) (interface{}, error) {
	left, _ := expr.Left.Accept(printer)
	right, _ := expr.Right.Accept(printer)
	return fmt.Sprintf("(%s %s %s)", expr.Op.Lexeme, left, right), nil
}

func (printer *AstPrinter) VisitSetExpr(expr *SetExpr) (interface{}, error) {
	object, _ := expr.Object.Accept(printer)
	val, _ := expr.Val.Accept(printer)
	return fmt.Sprintf("(set %s %s %s)", object, expr.Name.Lexeme, val), nil
}

func (printer *AstPrinter) VisitSuperExpr(expr *SuperExpr) (interface{}, error) {
	return fmt.Sprintf("(super %s)", expr.Method.Lexeme), nil
}

func (printer *AstPrinter) VisitThisExpr(expr *ThisExpr) (interface{}, error) {
	return "this", nil
}

func (printer *AstPrinter) VisitUnaryExpr(expr *UnaryExpr) (interface{}, error) {
	exprStr, _ := expr.Expression.Accept(printer)
	return fmt.Sprintf("(%s %s)", expr.Op.Lexeme, exprStr), nil
}

func (printer *AstPrinter) VisitVariableExpr(expr *VariableExpr) (interface{}, error) {
	return expr.Name.Lexeme, nil
}
