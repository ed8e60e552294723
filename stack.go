package forth

// The value stack is a LIFO of 32-bit signed integers; the top of the stack
// is the end of the slice. Every pop from an empty stack halts evaluation with
// ErrStackUnderflow; anything already done to the stack stays done.

func (fs *Interpreter) push(val int32) {
	fs.stack = append(fs.stack, val)
}

func (fs *Interpreter) pop() (val int32) {
	i := len(fs.stack) - 1
	if i < 0 {
		fs.halt(ErrStackUnderflow)
	}
	val, fs.stack = fs.stack[i], fs.stack[:i]
	return val
}

//// Integer Operations

// Symbol   Name       Function
//    +     add        pop top 2 elements of stack, add, push
func (fs *Interpreter) add() { a, b := fs.pop(), fs.pop(); fs.push(b + a) }

// Symbol   Name       Function
//    -     subtract   pop top 2 elements of stack, push second minus first
func (fs *Interpreter) sub() { a, b := fs.pop(), fs.pop(); fs.push(b - a) }

// Symbol   Name       Function
//    *     multiply   pop top 2 elements of stack, multiply, push
func (fs *Interpreter) mul() { a, b := fs.pop(), fs.pop(); fs.push(b * a) }

// Symbol   Name       Function
//    /     divide     pop top 2 elements of stack, push second divided by
//                     first, truncating toward zero
func (fs *Interpreter) div() {
	a, b := fs.pop(), fs.pop()
	if a == 0 {
		fs.halt(ErrDivisionByZero)
	}
	fs.push(b / a)
}

//// Stack Operations

// Name   Function
// dup    copy the top of stack
func (fs *Interpreter) dup() { a := fs.pop(); fs.push(a); fs.push(a) }

// Name   Function
// drop   discard the top of stack
func (fs *Interpreter) drop() { fs.pop() }

// Name   Function
// swap   exchange the top two elements of stack
func (fs *Interpreter) swap() { a, b := fs.pop(), fs.pop(); fs.push(a); fs.push(b) }

// Name   Function
// over   copy the second element of stack up over the top
func (fs *Interpreter) over() { a, b := fs.pop(), fs.pop(); fs.push(b); fs.push(a); fs.push(b) }

var opTable = [tokenMax]func(fs *Interpreter){
	TokenAdd:  (*Interpreter).add,
	TokenSub:  (*Interpreter).sub,
	TokenMul:  (*Interpreter).mul,
	TokenDiv:  (*Interpreter).div,
	TokenDup:  (*Interpreter).dup,
	TokenDrop: (*Interpreter).drop,
	TokenSwap: (*Interpreter).swap,
	TokenOver: (*Interpreter).over,
}
