package forth

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ops(t *testing.T) {
	var (
		add  = (*Interpreter).add
		sub  = (*Interpreter).sub
		mul  = (*Interpreter).mul
		div  = (*Interpreter).div
		dup  = (*Interpreter).dup
		drop = (*Interpreter).drop
		swap = (*Interpreter).swap
		over = (*Interpreter).over
	)
	fsTestCases{
		// binary integer operations on the stack
		fsTest("add").withStack(5, 3, 1).do(add).expectStack(5, 4),
		fsTest("sub").withStack(5, 3, 1).do(sub).expectStack(5, 2),
		fsTest("sub negative").withStack(3, 4).do(sub).expectStack(-1),
		fsTest("mul").withStack(11, 5, 6).do(mul).expectStack(11, 30),
		fsTest("div").withStack(7, 13, 3).do(div).expectStack(7, 4),
		fsTest("div truncates").withStack(-7, 2).do(div).expectStack(-3),
		fsTest("div by zero").withStack(9, 4, 0).do(div).expectError(ErrDivisionByZero).expectStack(9),
		fsTest("add wraps").withStack(math.MaxInt32, 1).do(add).expectStack(math.MinInt32),
		fsTest("div wraps").withStack(math.MinInt32, -1).do(div).expectStack(math.MinInt32),

		// stack manipulation
		fsTest("dup").withStack(1, 2).do(dup).expectStack(1, 2, 2),
		fsTest("drop").withStack(1, 2).do(drop).expectStack(1),
		fsTest("swap").withStack(1, 2, 3).do(swap).expectStack(1, 3, 2),
		fsTest("over").withStack(1, 2, 3).do(over).expectStack(1, 2, 3, 2),
		fsTest("sequence").withStack(1, 2).do(over, over, add, mul).expectStack(1, 6),

		// every pop checks for underflow, keeping whatever came before
		fsTest("add underflow").withStack(1).do(add).expectError(ErrStackUnderflow).expectStack(),
		fsTest("sub underflow").do(sub).expectError(ErrStackUnderflow).expectStack(),
		fsTest("mul underflow").withStack(1).do(mul).expectError(ErrStackUnderflow).expectStack(),
		fsTest("div underflow").withStack(1).do(div).expectError(ErrStackUnderflow).expectStack(),
		fsTest("dup underflow").do(dup).expectError(ErrStackUnderflow).expectStack(),
		fsTest("drop underflow").do(drop).expectError(ErrStackUnderflow).expectStack(),
		fsTest("swap underflow").withStack(1).do(swap).expectError(ErrStackUnderflow).expectStack(),
		fsTest("over underflow").withStack(1).do(over).expectError(ErrStackUnderflow).expectStack(),
		fsTest("halt stops ops").withStack(1).do(drop, drop, dup).expectError(ErrStackUnderflow).expectStack(),
	}.run(t)
}

func Test_Interpreter(t *testing.T) {
	fsTestCases{
		// parsing and numbers
		fsTest("numbers").withInput("1 2 3 4 5").expectStack(1, 2, 3, 4, 5),
		fsTest("negative numbers").withInput("-1 -2 -3 -4 -5").expectStack(-1, -2, -3, -4, -5),
		fsTest("plus sign").withInput("+7").expectStack(7),
		fsTest("whitespace").withInput("\t1\n 2  \r\n+ ").expectStack(3),
		fsTest("empty").withInput("").expectStack(),
		fsTest("max int").withInput("2147483647 -2147483648").expectStack(math.MaxInt32, math.MinInt32),
		fsTest("out of range").withInput("2147483648").expectError(ErrUnknownWord).expectStack(),

		// arithmetic
		fsTest("add").withInput("1 2 +").expectStack(3),
		fsTest("add nothing").withInput("+").expectError(ErrStackUnderflow).expectStack(),
		fsTest("add one").withInput("1 +").expectError(ErrStackUnderflow).expectStack(),
		fsTest("sub").withInput("3 4 -").expectStack(-1),
		fsTest("sub one").withInput("1 -").expectError(ErrStackUnderflow).expectStack(),
		fsTest("mul").withInput("2 4 *").expectStack(8),
		fsTest("mul one").withInput("1 *").expectError(ErrStackUnderflow).expectStack(),
		fsTest("div").withInput("4 2 /").expectStack(2),
		fsTest("div truncates").withInput("8 3 /").expectStack(2),
		fsTest("div by zero").withInput("4 0 /").expectError(ErrDivisionByZero).expectStack(),
		fsTest("div one").withInput("1 /").expectError(ErrStackUnderflow).expectStack(),
		fsTest("add and sub").withInput("1 2 + 4 -").expectStack(-1),
		fsTest("mul and div").withInput("2 4 * 3 /").expectStack(2),

		// stack manipulation
		fsTest("dup").withInput("1 dup").expectStack(1, 1),
		fsTest("dup top").withInput("1 2 dup").expectStack(1, 2, 2),
		fsTest("dup nothing").withInput("dup").expectError(ErrStackUnderflow).expectStack(),
		fsTest("drop").withInput("1 drop").expectStack(),
		fsTest("drop top").withInput("1 2 drop").expectStack(1),
		fsTest("drop nothing").withInput("drop").expectError(ErrStackUnderflow).expectStack(),
		fsTest("swap").withInput("1 2 swap").expectStack(2, 1),
		fsTest("swap top").withInput("1 2 3 swap").expectStack(1, 3, 2),
		fsTest("swap one").withInput("1 swap").expectError(ErrStackUnderflow).expectStack(),
		fsTest("over").withInput("1 2 over").expectStack(1, 2, 1),
		fsTest("over top").withInput("1 2 3 over").expectStack(1, 2, 3, 2),
		fsTest("over one").withInput("1 over").expectError(ErrStackUnderflow).expectStack(),
		fsTest("swap drop").withInput("1 2 swap drop").expectStack(2),

		// defined words
		fsTest("define").withInput(": dup-twice dup dup ; 1 dup-twice").expectStack(1, 1, 1),
		fsTest("define in order").withInput(": countup 1 2 3 ; countup").expectStack(1, 2, 3),
		fsTest("define empty").withInput(": nop ; 1 nop").expectStack(1).expectWords("nop"),
		fsTest("define only").withInput(": foo 1 ;").expectStack().expectWords("foo"),
		fsTest("redefine").withInput(": foo dup ; : foo dup dup ; 1 foo").expectStack(1, 1, 1),
		fsTest("redefine builtin").withInput(": swap dup ; 1 swap").expectStack(1, 1),
		fsTest("redefine operator").withInput(": + * ; 3 4 +").expectStack(12),
		fsTest("use then redefine").withInput(": foo 5 ; : bar foo ; : foo 6 ; bar foo").expectStack(5, 6),
		fsTest("redefine keeps old").withInput(": foo 1 ; : bar foo 1 + ; : foo 2 ; bar").expectStack(2),
		fsTest("redefine in terms of self").withInput(": foo 10 ; : foo foo 1 + ; foo").expectStack(11),
		fsTest("redefine many times").withInput(
			": foo 1 ; : foo foo 1 + ; : foo foo 1 + ; : foo foo 1 + ; foo",
		).expectStack(4).expectWords("foo"),
		fsTest("nested words").withInput(": a 1 ; : b a a + ; : c b b * ; c").expectStack(4),
		fsTest("define across inputs").withInput(": foo 1").withInput("; foo").expectError(ErrInvalidWord),
		fsTest("use across inputs").withInput(": foo 1 ;").withInput("foo foo").expectStack(1, 1),

		// case insensitivity
		fsTest("builtins ignore case").withInput("1 DUP Dup dup").expectStack(1, 1, 1, 1),
		fsTest("ops ignore case").withInput("1 2 3 4 DROP Drop drop").expectStack(1),
		fsTest("definitions ignore case").withInput(": SWAP DUP Dup dup ; 1 swap").expectStack(1, 1, 1, 1),
		fsTest("references ignore case").withInput(": foo dup ; 1 FOO Foo foo").expectStack(1, 1, 1, 1),

		// errors
		fsTest("unknown").withInput("foo").expectError(ErrUnknownWord).expectStack(),
		fsTest("unknown keeps stack").withInput("1 2 foo 3").expectError(ErrUnknownWord).expectStack(1, 2),
		fsTest("underflow in word").withInput(": foo + + ; 1 2 foo").expectError(ErrStackUnderflow).expectStack(),
		fsTest("stray end").withInput(";").expectError(ErrUnknownWord),
		fsTest("numeric name").withInput(": 1 2 ;").expectError(ErrInvalidWord).expectWords(),
		fsTest("negative name").withInput(": -1 2 ;").expectError(ErrInvalidWord).expectWords(),
		fsTest("missing name").withInput(":").expectError(ErrInvalidWord),
		fsTest("unterminated").withInput(": foo dup").expectError(ErrInvalidWord).expectWords(),
		fsTest("nested definition").withInput(": foo : bar ; ;").expectError(ErrInvalidWord).expectWords(),
		fsTest("unknown in definition").withInput(": foo bogus ;").expectError(ErrInvalidWord).expectWords(),
		fsTest("undefined self reference").withInput(": foo foo ;").expectError(ErrInvalidWord).expectWords(),
		fsTest("good then bad").withInput(": foo 1 ; : bar 1 bogus ;").expectError(ErrInvalidWord).expectWords("foo"),
	}.run(t)
}

func Test_Interpreter_errorContext(t *testing.T) {
	for _, tc := range []struct {
		input string
		err   string
	}{
		{"foo", `"foo": unknown word`},
		{"1 +", `"+": stack underflow`},
		{"1 0 /", `"/": division by zero`},
		{": foo dup", `"foo": invalid word`},
		{": 1 2 ;", `"1": invalid word`},
		{": foo bar ;", `"bar": invalid word`},
		{":", `":": invalid word`},
		{": foo 1 0 / ; foo", `"foo": division by zero`},
	} {
		t.Run(tc.input, func(t *testing.T) {
			err := New().Eval(tc.input)
			assert.EqualError(t, err, tc.err)
		})
	}
}

func Test_Interpreter_usableAfterError(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Eval(": foo 1 ;"))
	require.True(t, errors.Is(fs.Eval("1 0 /"), ErrDivisionByZero))
	require.True(t, errors.Is(fs.Eval(": bar"), ErrInvalidWord))
	require.NoError(t, fs.Eval("foo foo +"))
	assert.Equal(t, []int32{2}, fs.Stack())
	assert.Equal(t, []string{"foo"}, fs.Words())
}

type failingReader struct{ err error }

func (fr failingReader) ReadRune() (rune, int, error) { return 0, 0, fr.err }

func Test_Interpreter_readError(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Eval("1 2"))
	err := fs.EvalReader(failingReader{errors.New("device gone")})
	assert.EqualError(t, err, "device gone", "a prior unit must not be blamed for a read error")
	assert.Equal(t, []int32{1, 2}, fs.Stack())
}

func Test_Interpreter_dupProperty(t *testing.T) {
	for _, values := range [][]int32{
		{0},
		{1, 2, 3},
		{-5, 42},
		{math.MaxInt32},
		{math.MinInt32, 7, math.MaxInt32},
	} {
		t.Run(fmt.Sprint(values), func(t *testing.T) {
			fs := New(WithStack(values...))
			require.NoError(t, fs.Eval("dup"))
			stack := fs.Stack()
			require.Len(t, stack, len(values)+1)
			assert.Equal(t, stack[len(stack)-1], stack[len(stack)-2])
		})
	}
}

func Test_Interpreter_fresh(t *testing.T) {
	for i := 0; i < 2; i++ {
		fs := New()
		require.NoError(t, fs.Eval("1 2 swap drop"))
		assert.Equal(t, []int32{2}, fs.Stack(), "run #%v", i+1)
	}
}

func Test_Interpreter_deepExpansion(t *testing.T) {
	const depth = 10000

	fs := New()
	require.NoError(t, fs.Eval(": w0 1 + ;"))
	for i := 1; i < depth; i++ {
		require.NoError(t, fs.Eval(fmt.Sprintf(": w%v w%v ;", i, i-1)))
	}
	require.NoError(t, fs.Eval(fmt.Sprintf("0 w%v w%v", depth-1, depth/2)))
	assert.Equal(t, []int32{2}, fs.Stack())
}

func Test_Interpreter_Clone(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Eval(": foo 1 ; 5"))

	clone := fs.Clone()
	require.Error(t, clone.Eval(": foo 2 ; foo 6 bar"))
	assert.Equal(t, []int32{5, 2, 6}, clone.Stack())

	require.NoError(t, fs.Eval("foo"))
	assert.Equal(t, []int32{5, 1}, fs.Stack(), "original must be unaffected by its clone")
	assert.Equal(t, []string{"foo"}, fs.Words())
}

func Test_Interpreter_Stack(t *testing.T) {
	fs := New(WithStack(1, 2))
	stack := fs.Stack()
	stack[0] = 99
	assert.Equal(t, []int32{1, 2}, fs.Stack(), "must return a copy")
}

func Test_Interpreter_trace(t *testing.T) {
	var lines []string
	fs := New(WithLogf(func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}))
	require.Error(t, fs.Eval(": foo 1 ; : bar foo dup ; bar nope"))
	assert.Equal(t, []string{
		`> :`,
		`: foo @1 [1]`,
		`> :`,
		`: bar @2 [@1 dup]`,
		`> bar -> @2`,
		`@ @2 bar -- s:[]`,
		`@   @1 foo -- s:[]`,
		`# halt "nope": unknown word`,
	}, lines)
}

func Test_ErrorKind(t *testing.T) {
	fs := New()
	for input, kind := range map[string]error{
		"1 0 /":   ErrDivisionByZero,
		"drop":    ErrStackUnderflow,
		"nope":    ErrUnknownWord,
		": 5 6 ;": ErrInvalidWord,
	} {
		assert.Equal(t, kind, ErrorKind(fs.Eval(input)), "error kind for %q", input)
	}
	assert.Nil(t, ErrorKind(nil))
	assert.Nil(t, ErrorKind(errors.New("other")))
}

func Test_Interpreter_Dump(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Eval(": foo 1 ; : bar foo 1 + ; : foo 2 ; : nop ; bar"))

	var out strings.Builder
	require.NoError(t, fs.Dump(&out))
	assert.Equal(t, lines(
		`# Forth Dump`,
		`  stack: [2]`,
		`  words: [bar foo nop]`,
		`  @1 foo#1 : 1`,
		`  @2 bar : @1(foo#1) 1 +`,
		`  @3 foo : 2`,
		`  @4 nop :`,
	), out.String())
}

//// test case builder

type fsTestCases []fsTestCase

func (fsts fsTestCases) run(t *testing.T) {
	for _, fst := range fsts {
		t.Run(fst.name, fst.run)
	}
}

func fsTest(name string) (fst fsTestCase) {
	fst.name = name
	return fst
}

type fsTestCase struct {
	name    string
	opts    []Option
	inputs  []string
	ops     []func(fs *Interpreter)
	expect  []func(t *testing.T, fs *Interpreter)
	wantErr error
}

func (fst fsTestCase) withStack(values ...int32) fsTestCase {
	fst.opts = append(fst.opts, WithStack(values...))
	return fst
}

func (fst fsTestCase) withInput(input string) fsTestCase {
	fst.inputs = append(fst.inputs, input)
	return fst
}

func (fst fsTestCase) do(ops ...func(fs *Interpreter)) fsTestCase {
	fst.ops = append(fst.ops, ops...)
	return fst
}

func (fst fsTestCase) expectError(err error) fsTestCase {
	fst.wantErr = err
	return fst
}

func (fst fsTestCase) expectStack(values ...int32) fsTestCase {
	fst.expect = append(fst.expect, func(t *testing.T, fs *Interpreter) {
		if values == nil {
			values = []int32{}
		}
		stack := fs.Stack()
		if stack == nil {
			stack = []int32{}
		}
		assert.Equal(t, values, stack, "expected stack values")
	})
	return fst
}

func (fst fsTestCase) expectWords(words ...string) fsTestCase {
	fst.expect = append(fst.expect, func(t *testing.T, fs *Interpreter) {
		if words == nil {
			words = []string{}
		}
		assert.Equal(t, words, fs.Words(), "expected defined words")
	})
	return fst
}

func (fst fsTestCase) run(t *testing.T) {
	var trace []string
	opts := append([]Option{WithLogf(func(mess string, args ...interface{}) {
		trace = append(trace, fmt.Sprintf(mess, args...))
	})}, fst.opts...)
	fs := New(opts...)

	defer func() {
		if t.Failed() {
			for _, line := range trace {
				t.Logf("trace: %v", line)
			}
			var out strings.Builder
			fs.Dump(&out)
			t.Logf("%v", out.String())
		}
	}()

	err := fst.runOps(fs)
	for i := 0; err == nil && i < len(fst.inputs); i++ {
		err = fs.Eval(fst.inputs[i])
	}
	if fst.wantErr != nil {
		assert.True(t, errors.Is(err, fst.wantErr), "expected error: %v\ngot: %+v", fst.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected eval error")
	}

	for _, expect := range fst.expect {
		expect(t, fs)
	}
}

func (fst fsTestCase) runOps(fs *Interpreter) (err error) {
	defer fs.recoverHalt(&err)
	for _, op := range fst.ops {
		op(fs)
	}
	return nil
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}
