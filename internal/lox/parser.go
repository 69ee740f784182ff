package lox

// maxArity caps the number of parameters and call arguments.
const maxArity = 255

// Parser composes the syntax tree for the language from the sequence of valid
// tokens. The grammar that is being followed is documented in doc.go.
//
// Errors within a statement are returned up to the declaration boundary where
// they are reported, then the parser synchronizes to the next likely statement
// start so multiple errors can be collected from a single pass.
type Parser struct {
	current  int
	tokens   []*Token
	reporter Reporter
}

// NewParser creates a new parser for the language
func NewParser(tokens []*Token, reporter Reporter) *Parser {
	return &Parser{0, tokens, reporter}
}

// Parse collects the statements that make up the program. Syntax errors are
// sent to the reporter; the returned slice holds every statement that could
// be parsed.
func (parser *Parser) Parse() []Stmt {
	statements := make([]Stmt, 0)
	for !parser.isEOF() {
		stmt, err := parser.declaration()
		if err != nil {
			parser.reporter.Report(err)
			parser.sync()
			continue
		}
		statements = append(statements, stmt)
	}
	return statements
}

// declaration --> classDecl | funcDecl | varDecl | stmt ;
func (parser *Parser) declaration() (Stmt, error) {
	if parser.match(CLASS) {
		return parser.classDeclaration()
	}
	if parser.match(FUNCTION) {
		return parser.function("function")
	}
	if parser.match(VAR) {
		return parser.varDeclaration()
	}
	return parser.statement()
}

// classDecl --> "class" IDENT ( "<" IDENT )? "{" function* "}" ;
func (parser *Parser) classDeclaration() (Stmt, error) {
	name, err := parser.consume(IDENTIFIER, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *VariableExpr
	if parser.match(LESS) {
		superName, err := parser.consume(IDENTIFIER, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = NewVariableExpr(superName)
	}

	if _, err := parser.consume(LEFT_BRACE, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	methods := make([]*FunctionStmt, 0)
	for !parser.check(RIGHT_BRACE) && !parser.isEOF() {
		method, err := parser.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method.(*FunctionStmt))
	}
	if _, err := parser.consume(RIGHT_BRACE, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return NewClassStmt(name, superclass, methods), nil
}

// function --> IDENT "(" params? ")" block ;
func (parser *Parser) function(kind string) (Stmt, error) {
	name, err := parser.consume(IDENTIFIER, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(LEFT_PAREN, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	params := make([]*Token, 0)
	if !parser.check(RIGHT_PAREN) {
		for {
			if len(params) >= maxArity {
				// report but keep parsing, the parameter list is still valid
				parser.reporter.Report(NewParseError(parser.peek(),
					"Can't have more than 255 parameters."))
			}
			param, err := parser.consume(IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !parser.match(COMMA) {
				break
			}
		}
	}
	if _, err := parser.consume(RIGHT_PAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := parser.consume(LEFT_BRACE, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}
	return NewFunctionStmt(name, params, body), nil
}

// varDecl --> "var" IDENT ( "=" expr )? ";" ;
func (parser *Parser) varDeclaration() (Stmt, error) {
	name, err := parser.consume(IDENTIFIER, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init Expr
	if parser.match(EQUAL) {
		init, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return NewVarStmt(name, init), nil
}

// stmt --> block | exprStmt | forStmt | ifStmt | printStmt | returnStmt
//        | whileStmt ;
func (parser *Parser) statement() (Stmt, error) {
	if parser.match(FOR) {
		return parser.forStatement()
	}
	if parser.match(IF) {
		return parser.ifStatement()
	}
	if parser.match(PRINT) {
		return parser.printStatement()
	}
	if parser.match(RETURN) {
		return parser.returnStatement()
	}
	if parser.match(WHILE) {
		return parser.whileStatement()
	}
	if parser.match(LEFT_BRACE) {
		stmts, err := parser.block()
		if err != nil {
			return nil, err
		}
		return NewBlockStmt(stmts), nil
	}
	return parser.expressionStatement()
}

// forStmt --> "for" "(" ( varDecl | exprStmt | ";" ) expr? ";" expr? ")" stmt ;
//
// There's no dedicated node for the for-loop; it desugars into a while-loop
// wrapped in a block that runs the initializer once.
func (parser *Parser) forStatement() (Stmt, error) {
	if _, err := parser.consume(LEFT_PAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	if parser.match(SEMICOLON) {
		init = nil
	} else if parser.match(VAR) {
		init, err = parser.varDeclaration()
	} else {
		init, err = parser.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !parser.check(SEMICOLON) {
		cond, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var inc Expr
	if !parser.check(RIGHT_PAREN) {
		inc, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(RIGHT_PAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := parser.statement()
	if err != nil {
		return nil, err
	}

	if inc != nil {
		body = NewBlockStmt([]Stmt{body, NewExprStmt(inc)})
	}
	if cond == nil {
		cond = NewLiteralExpr(true)
	}
	body = NewWhileStmt(cond, body)
	if init != nil {
		body = NewBlockStmt([]Stmt{init, body})
	}
	return body, nil
}

// ifStmt --> "if" "(" expr ")" stmt ( "else" stmt )? ;
func (parser *Parser) ifStatement() (Stmt, error) {
	if _, err := parser.consume(LEFT_PAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(RIGHT_PAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := parser.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if parser.match(ELSE) {
		elseBranch, err = parser.statement()
		if err != nil {
			return nil, err
		}
	}
	return NewIfStmt(cond, thenBranch, elseBranch), nil
}

// printStmt --> "print" expr ";" ;
func (parser *Parser) printStatement() (Stmt, error) {
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return NewPrintStmt(expr), nil
}

// returnStmt --> "return" expr? ";" ;
func (parser *Parser) returnStatement() (Stmt, error) {
	keyword := parser.prev()
	var val Expr
	var err error
	if !parser.check(SEMICOLON) {
		val, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := parser.consume(SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return NewReturnStmt(keyword, val), nil
}

// whileStmt --> "while" "(" expr ")" stmt ;
func (parser *Parser) whileStatement() (Stmt, error) {
	if _, err := parser.consume(LEFT_PAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(RIGHT_PAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := parser.statement()
	if err != nil {
		return nil, err
	}
	return NewWhileStmt(cond, body), nil
}

// block --> "{" decl* "}" ;
func (parser *Parser) block() ([]Stmt, error) {
	statements := make([]Stmt, 0)
	for !parser.check(RIGHT_BRACE) && !parser.isEOF() {
		stmt, err := parser.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := parser.consume(RIGHT_BRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

// exprStmt --> expr ";" ;
func (parser *Parser) expressionStatement() (Stmt, error) {
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if _, err := parser.consume(SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return NewExprStmt(expr), nil
}

// expr --> assign ;
func (parser *Parser) expression() (Expr, error) {
	return parser.assignment()
}

// assign --> ( call "." )? IDENT "=" assign | or ;
//
// The left-hand side is parsed as a normal expression first; only when an '='
// follows do we check whether that expression is a valid assignment target.
func (parser *Parser) assignment() (Expr, error) {
	expr, err := parser.or()
	if err != nil {
		return nil, err
	}

	if parser.match(EQUAL) {
		equals := parser.prev()
		val, err := parser.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *VariableExpr:
			return NewAssignExpr(target.Name, val), nil
		case *GetExpr:
			return NewSetExpr(target.Object, target.Name, val), nil
		}
		// report without unwinding, the parser is still in a good state
		parser.reporter.Report(NewParseError(equals, "Invalid assignment target."))
	}
	return expr, nil
}

// or --> and ( "or" and )* ;
func (parser *Parser) or() (Expr, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}
	for parser.match(OR) {
		op := parser.prev()
		right, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = NewLogicalExpr(op, expr, right)
	}
	return expr, nil
}

// and --> equality ( "and" equality )* ;
func (parser *Parser) and() (Expr, error) {
	expr, err := parser.equality()
	if err != nil {
		return nil, err
	}
	for parser.match(AND) {
		op := parser.prev()
		right, err := parser.equality()
		if err != nil {
			return nil, err
		}
		expr = NewLogicalExpr(op, expr, right)
	}
	return expr, nil
}

// Creates a left-associative nested tree of binary operator nodes. Matches a
// higher precedence rule `comparison` if it does not hit "!=" or "==".
//
// equality --> comparison ( ( "!=" | "==" ) comparison )* ;
func (parser *Parser) equality() (Expr, error) {
	expr, err := parser.comparison()
	if err != nil {
		return nil, err
	}
	for parser.match(BANG_EQUAL, EQUAL_EQUAL) {
		op := parser.prev()
		right, err := parser.comparison()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// comparison --> term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
func (parser *Parser) comparison() (Expr, error) {
	expr, err := parser.term()
	if err != nil {
		return nil, err
	}
	for parser.match(GREATER, GREATER_EQUAL, LESS, LESS_EQUAL) {
		op := parser.prev()
		right, err := parser.term()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// term --> factor ( ( "-" | "+" ) factor )* ;
func (parser *Parser) term() (Expr, error) {
	expr, err := parser.factor()
	if err != nil {
		return nil, err
	}
	for parser.match(MINUS, PLUS) {
		op := parser.prev()
		right, err := parser.factor()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// factor --> unary ( ( "/" | "*" | "%" ) unary )* ;
func (parser *Parser) factor() (Expr, error) {
	expr, err := parser.unary()
	if err != nil {
		return nil, err
	}
	for parser.match(SLASH, STAR, PERCENT) {
		op := parser.prev()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// unary --> ( "!" | "-" ) unary | call ;
func (parser *Parser) unary() (Expr, error) {
	if parser.match(BANG, MINUS) {
		op := parser.prev()
		expr, err := parser.unary()
		if err != nil {
			return nil, err
		}
		return NewUnaryExpr(op, expr), nil
	}
	return parser.call()
}

// call --> primary ( "(" args? ")" | "." IDENT )* ;
func (parser *Parser) call() (Expr, error) {
	expr, err := parser.primary()
	if err != nil {
		return nil, err
	}
	for {
		if parser.match(LEFT_PAREN) {
			expr, err = parser.finishCall(expr)
			if err != nil {
				return nil, err
			}
		} else if parser.match(DOT) {
			name, err := parser.consume(IDENTIFIER, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = NewGetExpr(expr, name)
		} else {
			break
		}
	}
	return expr, nil
}

// args --> expr ( "," expr )* ;
func (parser *Parser) finishCall(callee Expr) (Expr, error) {
	args := make([]Expr, 0)
	if !parser.check(RIGHT_PAREN) {
		for {
			if len(args) >= maxArity {
				parser.reporter.Report(NewParseError(parser.peek(),
					"Can't have more than 255 arguments."))
			}
			arg, err := parser.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !parser.match(COMMA) {
				break
			}
		}
	}
	paren, err := parser.consume(RIGHT_PAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return NewCallExpr(callee, paren, args), nil
}

// primary --> NUMBER | STRING | IDENT | "true" | "false" | "nil" | "this"
//           | "super" "." IDENT | "(" expr ")" ;
func (parser *Parser) primary() (Expr, error) {
	if parser.match(FALSE) {
		return NewLiteralExpr(false), nil
	}
	if parser.match(TRUE) {
		return NewLiteralExpr(true), nil
	}
	if parser.match(NIL) {
		return NewLiteralExpr(nil), nil
	}
	if parser.match(NUMBER, STRING) {
		return NewLiteralExpr(parser.prev().Literal), nil
	}
	if parser.match(SUPER) {
		keyword := parser.prev()
		if _, err := parser.consume(DOT, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := parser.consume(IDENTIFIER, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return NewSuperExpr(keyword, method), nil
	}
	if parser.match(THIS) {
		return NewThisExpr(parser.prev()), nil
	}
	if parser.match(IDENTIFIER) {
		return NewVariableExpr(parser.prev()), nil
	}
	if parser.match(LEFT_PAREN) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if _, err := parser.consume(
			RIGHT_PAREN,
			"Expect ')' after expression.",
		); err != nil {
			return nil, err
		}
		return NewGroupingExpr(expr), nil
	}
	return nil, NewParseError(parser.peek(), "Expect expression.")
}

func (parser *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if parser.check(tt) {
			parser.advance()
			return true
		}
	}
	return false
}

func (parser *Parser) consume(typ TokenType, message string) (*Token, error) {
	if parser.check(typ) {
		return parser.advance(), nil
	}
	return nil, NewParseError(parser.peek(), message)
}

func (parser *Parser) check(tt TokenType) bool {
	if parser.isEOF() {
		return false
	}
	return parser.peek().Typ == tt
}

func (parser *Parser) advance() *Token {
	if !parser.isEOF() {
		parser.current++
	}
	return parser.prev()
}

func (parser *Parser) isEOF() bool {
	return parser.peek().Typ == EOF
}

func (parser *Parser) peek() *Token {
	return parser.tokens[parser.current]
}

func (parser *Parser) prev() *Token {
	return parser.tokens[parser.current-1]
}

// sync drops tokens until the parser is likely positioned at the start of the
// next statement, so a single syntax error does not cascade.
func (parser *Parser) sync() {
	parser.advance()
	for !parser.isEOF() {
		if parser.prev().Typ == SEMICOLON {
			return
		}
		switch parser.peek().Typ {
		case CLASS, FUNCTION, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		parser.advance()
	}
}
