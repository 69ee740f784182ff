package lox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func interpretSource(t *testing.T, src string) (string, *mockReporter) {
	t.Helper()
	report := newMockReporter()
	var out strings.Builder
	interpreter := NewInterpreter(&out, report, false)
	Run(src, interpreter, report)
	return out.String(), report
}

func TestInterpretExpressions(t *testing.T) {
	testCases := []struct {
		src string
		out string
	}{
		{"print 1 + 2;", "3\n"},
		{"print 2 * 3 + 4;", "10\n"},
		{"print 2 + 3 * 4;", "14\n"},
		{"print (2 + 3) * 4;", "20\n"},
		{"print 1 / 2;", "0.5\n"},
		{"print 10 % 3;", "1\n"},
		{"print 10 % 3 + 1;", "2\n"},
		{"print -3.14;", "-3.14\n"},
		{"print 4294967296;", "4294967296\n"},
		{"print 3.14000;", "3.14\n"},
		{"print \"hello\";", "hello\n"},
		{"print nil;", "nil\n"},
		{"print true;", "true\n"},
		{"print 1 < 2;", "true\n"},
		{"print 2 <= 2;", "true\n"},
		{"print 1 > 2;", "false\n"},
		{"print 1 == 1;", "true\n"},
		{"print 1 == \"1\";", "false\n"},
		{"print nil == nil;", "true\n"},
		{"print 1 != 2;", "true\n"},
		{"print !nil;", "true\n"},
		{"print !false;", "true\n"},
		{"print !0;", "false\n"},
		{"print !\"\";", "false\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		out, report := interpretSource(t, tc.src)

		assert.False(report.HadError(), tc.src)
		assert.False(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.out, out, tc.src)
	}
}

func TestInterpretStringConcatenation(t *testing.T) {
	testCases := []struct {
		src string
		out string
	}{
		{"print \"foo\" + \"bar\";", "foobar\n"},
		{"print \"count: \" + 3;", "count: 3\n"},
		{"print 3 + \" items\";", "3 items\n"},
		{"print \"truthy: \" + true;", "truthy: true\n"},
		{"print \"value: \" + nil;", "value: nil\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		out, report := interpretSource(t, tc.src)

		assert.False(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.out, out, tc.src)
	}
}

func TestInterpretDivisionByZero(t *testing.T) {
	testCases := []struct {
		src string
		out string
	}{
		{"print 1 / 0;", "+Inf\n"},
		{"print -1 / 0;", "-Inf\n"},
		{"print 0 / 0;", "NaN\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		out, report := interpretSource(t, tc.src)

		assert.False(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.out, out, tc.src)
	}
}

func TestInterpretVariablesAndScopes(t *testing.T) {
	testCases := []struct {
		src string
		out string
	}{
		{"var a = 1; print a;", "1\n"},
		{"var a; print a;", "nil\n"},
		{"var a = 1; a = 2; print a;", "2\n"},
		{"var a = 1; var a = 2; print a;", "2\n"},
		{"var a = 1; { var a = 2; print a; } print a;", "2\n1\n"},
		{"var a = 1; { a = 2; } print a;", "2\n"},
		{"var a = \"global\"; { function show() { print a; } show(); var a = \"local\"; show(); }",
			"global\nglobal\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		out, report := interpretSource(t, tc.src)

		assert.False(report.HadError(), tc.src)
		assert.False(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.out, out, tc.src)
	}
}

func TestInterpretControlFlow(t *testing.T) {
	testCases := []struct {
		src string
		out string
	}{
		{"if (true) print 1; else print 2;", "1\n"},
		{"if (false) print 1; else print 2;", "2\n"},
		{"if (0) print \"truthy\";", "truthy\n"},
		{"if (\"\") print \"truthy\";", "truthy\n"},
		{"if (nil) print 1; else print 2;", "2\n"},
		{"print true or sideEffect();", "true\n"},
		{"print false and sideEffect();", "false\n"},
		{"print nil or \"fallback\";", "fallback\n"},
		{"print 1 or 2;", "1\n"},
		{"print 1 and 2;", "2\n"},
		{"var i = 0; while (i < 3) { print i; i = i + 1; }", "0\n1\n2\n"},
		{"for (var i = 0; i < 3; i = i + 1) print i;", "0\n1\n2\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		out, report := interpretSource(t, tc.src)

		assert.False(report.HadError(), tc.src)
		assert.False(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.out, out, tc.src)
	}
}

func TestInterpretFunctions(t *testing.T) {
	testCases := []struct {
		src string
		out string
	}{
		{"function add(a, b) { return a + b; } print add(1, 2);", "3\n"},
		{"function f() { } print f();", "nil\n"},
		{"function f() { return; } print f();", "nil\n"},
		{"function f() { print \"body\"; } print f;", "<fn f>\n"},
		{`function fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);`, "55\n"},
		{`function makeCounter() {
			var count = 0;
			function increment() {
				count = count + 1;
				return count;
			}
			return increment;
		}
		var counter = makeCounter();
		print counter();
		print counter();`, "1\n2\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		out, report := interpretSource(t, tc.src)

		assert.False(report.HadError(), tc.src)
		assert.False(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.out, out, tc.src)
	}
}

func TestInterpretClasses(t *testing.T) {
	testCases := []struct {
		src string
		out string
	}{
		{"class A { } print A;", "A\n"},
		{"class A { } print A();", "A instance\n"},
		{"class A { } var a = A(); a.field = 1; print a.field;", "1\n"},
		{`class Greeter {
			greet() { return "hello"; }
		}
		print Greeter().greet();`, "hello\n"},
		{`class Point {
			init(x) { this.x = x; }
		}
		print Point(7).x;`, "7\n"},
		{`class Point {
			init(x) { this.x = x; }
			shifted(dx) { return Point(this.x + dx); }
		}
		print Point(1).shifted(2).x;`, "3\n"},
		{`class A {
			m() { return "A"; }
		}
		class B < A {
			n() { return "B"; }
		}
		var b = B();
		print b.m();
		print b.n();`, "A\nB\n"},
		{`class A {
			m() { return "A"; }
		}
		class B < A {
			m() { return "B(" + super.m() + ")"; }
		}
		print B().m();`, "B(A)\n"},
		{`class A {
			init() { this.x = 1; }
		}
		var a = A();
		print a.init() == a;`, "true\n"},
		{`class A {
			who() { return "method"; }
		}
		var a = A();
		a.who = "field";
		print a.who;`, "field\n"},
		{`class A {
			who() { return this.name; }
		}
		var a = A();
		a.name = "bound";
		var m = a.who;
		print m();`, "bound\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		out, report := interpretSource(t, tc.src)

		assert.False(report.HadError(), tc.src)
		assert.False(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.out, out, tc.src)
	}
}

func TestInterpretRuntimeErrors(t *testing.T) {
	testCases := []struct {
		src    string
		errors []error
		out    string
	}{
		{"print missing;",
			[]error{NewRuntimeError(
				NewToken(IDENTIFIER, "missing", nil, 1),
				"Undefined variable 'missing'.")},
			""},
		{"missing = 1;",
			[]error{NewRuntimeError(
				NewToken(IDENTIFIER, "missing", nil, 1),
				"Undefined variable 'missing'.")},
			""},
		{"print -\"text\";",
			[]error{NewRuntimeError(
				NewToken(MINUS, "-", nil, 1),
				"Operand must be a number.")},
			""},
		{"print 1 < \"2\";",
			[]error{NewRuntimeError(
				NewToken(LESS, "<", nil, 1),
				"Operands must be numbers.")},
			""},
		{"print 1 + nil;",
			[]error{NewRuntimeError(
				NewToken(PLUS, "+", nil, 1),
				"Operands must be two numbers or two strings.")},
			""},
		{"print true % 2;",
			[]error{NewRuntimeError(
				NewToken(PERCENT, "%", nil, 1),
				"Operands must be numbers.")},
			""},
		{"\"not callable\"();",
			[]error{NewRuntimeError(
				NewToken(RIGHT_PAREN, ")", nil, 1),
				"Can only call functions and classes.")},
			""},
		{"function f(a) { } f(1, 2);",
			[]error{NewRuntimeError(
				NewToken(RIGHT_PAREN, ")", nil, 1),
				"Expected 1 arguments but got 2.")},
			""},
		{"class A { init(x) { } } A();",
			[]error{NewRuntimeError(
				NewToken(RIGHT_PAREN, ")", nil, 1),
				"Expected 1 arguments but got 0.")},
			""},
		{"print 1.field;",
			[]error{NewRuntimeError(
				NewToken(IDENTIFIER, "field", nil, 1),
				"Only instances have properties.")},
			""},
		{"var x = 1; x.field = 2;",
			[]error{NewRuntimeError(
				NewToken(IDENTIFIER, "field", nil, 1),
				"Only instances have fields.")},
			""},
		{"class A { } print A().missing;",
			[]error{NewRuntimeError(
				NewToken(IDENTIFIER, "missing", nil, 1),
				"Undefined property 'missing'.")},
			""},
		{"var NotAClass = 1; class B < NotAClass { }",
			[]error{NewRuntimeError(
				NewToken(IDENTIFIER, "NotAClass", nil, 1),
				"Superclass must be a class.")},
			""},
		// execution stops at the first runtime error
		{"print 1; print missing; print 2;",
			[]error{NewRuntimeError(
				NewToken(IDENTIFIER, "missing", nil, 1),
				"Undefined variable 'missing'.")},
			"1\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		out, report := interpretSource(t, tc.src)

		assert.False(report.HadError(), tc.src)
		assert.True(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.errors, report.errors, tc.src)
		assert.Equal(tc.out, out, tc.src)
	}
}

func TestInterpretReplEchoesExpressions(t *testing.T) {
	testCases := []struct {
		src string
		out string
	}{
		{"1 + 2;", "3\n"},
		{"\"a\" + \"b\";", "ab\n"},
		{"var a = 1;", ""},
		{"var a = 1; a = 2;", ""},
		{"var a = 1; a == 1;", "true\n"},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		report := newMockReporter()
		var out strings.Builder
		interpreter := NewInterpreter(&out, report, true)
		Run(tc.src, interpreter, report)

		assert.False(report.HadError(), tc.src)
		assert.False(report.HadRuntimeError(), tc.src)
		assert.Equal(tc.out, out.String(), tc.src)
	}
}

func TestInterpretClock(t *testing.T) {
	assert := assert.New(t)
	out, report := interpretSource(t, "print clock() >= 0;")

	assert.False(report.HadError())
	assert.False(report.HadRuntimeError())
	assert.Equal("true\n", out)
}

func TestInterpretStateAcrossRuns(t *testing.T) {
	assert := assert.New(t)
	report := newMockReporter()
	var out strings.Builder
	interpreter := NewInterpreter(&out, report, false)

	Run("var a = 1;", interpreter, report)
	report.Reset()
	Run("print a;", interpreter, report)

	assert.False(report.HadError())
	assert.False(report.HadRuntimeError())
	assert.Equal("1\n", out.String())
}
