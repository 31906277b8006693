package showcase

import (
	"log"
	"math"
	"strconv"

	"github.com/go-drift/arbor/pkg/engine"
	"github.com/go-drift/arbor/pkg/graphics"
	"github.com/go-drift/arbor/pkg/tree"
	"github.com/go-drift/arbor/pkg/widgets"
)

// CalcKind enumerates calculator key presses.
type CalcKind int

const (
	CalcDigit CalcKind = iota
	CalcOperator
	CalcDecimal
	CalcNegate
	CalcEquals
	CalcClear
)

// CalcOp is a binary operator.
type CalcOp int

const (
	OpAdd CalcOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op CalcOp) apply(a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpMod:
		return math.Mod(a, b)
	default:
		return b
	}
}

// CalcMessage is produced by a calculator key.
type CalcMessage struct {
	Kind  CalcKind
	Digit float64
	Op    CalcOp
}

// Key messages.
func Digit(d float64) CalcMessage { return CalcMessage{Kind: CalcDigit, Digit: d} }
func Operator(op CalcOp) CalcMessage { return CalcMessage{Kind: CalcOperator, Op: op} }

var (
	Decimal = CalcMessage{Kind: CalcDecimal}
	Negate  = CalcMessage{Kind: CalcNegate}
	Equals  = CalcMessage{Kind: CalcEquals}
	Clear   = CalcMessage{Kind: CalcClear}
)

// CalcState is the arithmetic state machine behind the calculator.
type CalcState struct {
	current float64
	// pending is the left operand and operator waiting for Equals.
	pending    *pendingOp
	decimal    float64
	hasDecimal bool
}

type pendingOp struct {
	left float64
	op   CalcOp
}

// Apply feeds one key press and returns the new display text.
func (s *CalcState) Apply(msg CalcMessage) string {
	switch msg.Kind {
	case CalcDigit:
		if s.hasDecimal {
			s.current += s.decimal * msg.Digit
			s.decimal /= 10
		} else {
			s.current = s.current*10 + msg.Digit
		}
	case CalcEquals:
		if s.pending != nil {
			s.current = s.pending.op.apply(s.pending.left, s.current)
			s.pending = nil
		}
	case CalcNegate:
		s.current = -s.current
	case CalcOperator:
		if s.pending != nil {
			s.current = s.pending.op.apply(s.pending.left, s.current)
		}
		s.pending = &pendingOp{left: s.current, op: msg.Op}
		s.current = 0
		s.hasDecimal = false
	case CalcClear:
		*s = CalcState{}
	case CalcDecimal:
		if !s.hasDecimal {
			s.hasDecimal = true
			s.decimal = 0.1
		}
	}
	return s.Display()
}

// Display formats the current value with at most 12 significant digits.
func (s *CalcState) Display() string {
	if s.current == 0 {
		return "0"
	}
	return strconv.FormatFloat(s.current, 'g', 12, 64)
}

// Calculator is a four-function calculator: a display above five rows of
// buttons.
type Calculator struct {
	state   CalcState
	display tree.ID
	// Verbose logs every key press.
	Verbose bool
}

// CalculatorOrange is the button color.
var CalculatorOrange = graphics.RGB(0xF4, 0x95, 0x29)

type calcKey struct {
	text   string
	weight float64
	msg    CalcMessage
}

var calcRows = [][]calcKey{
	{{"C", 1, Clear}, {"+/-", 1, Negate}, {"%", 1, Operator(OpMod)}, {"/", 1, Operator(OpDiv)}},
	{{"7", 1, Digit(7)}, {"8", 1, Digit(8)}, {"9", 1, Digit(9)}, {"*", 1, Operator(OpMul)}},
	{{"4", 1, Digit(4)}, {"5", 1, Digit(5)}, {"6", 1, Digit(6)}, {"-", 1, Operator(OpSub)}},
	{{"1", 1, Digit(1)}, {"2", 1, Digit(2)}, {"3", 1, Digit(3)}, {"+", 1, Operator(OpAdd)}},
	{{"0", 2, Digit(0)}, {".", 1, Decimal}, {"=", 1, Equals}},
}

// Display returns the id of the display label.
func (c *Calculator) Display() tree.ID {
	return c.display
}

func (c *Calculator) Build(ctx *engine.WidgetContext[CalcMessage]) tree.ID {
	c.display = ctx.CreateWidget(widgets.NewLabel(c.state.Display()))
	items := []widgets.FlexItem{
		widgets.NonFlex(ctx.CreateWidget(widgets.NewPadding(graphics.EdgeInsetsAll(5), c.display))),
	}
	for _, row := range calcRows {
		items = append(items, widgets.Flexible(calcRow(ctx, row), 1))
	}
	return ctx.CreateWidget(widgets.Column(widgets.FlexAlignBaseline, items...))
}

func (c *Calculator) HandleMessage(msg CalcMessage, ctx *engine.WidgetContext[CalcMessage]) {
	if c.Verbose {
		log.Printf("calculator: %+v", msg)
	}
	ctx.SendMessage(c.display, widgets.LabelSetText{Text: c.state.Apply(msg)})
}

func calcRow(ctx *engine.WidgetContext[CalcMessage], keys []calcKey) tree.ID {
	items := make([]widgets.FlexItem, 0, len(keys))
	for _, key := range keys {
		b := widgets.NewButton(ctx.CreateWidget, key.text).WithColor(
			CalculatorOrange,
			CalculatorOrange.Mix(graphics.ColorWhite, 0.25),
			CalculatorOrange.Mix(graphics.ColorBlack, 0.15),
		)
		id := ctx.CreateWidget(b)
		msg := key.msg
		ctx.AddClickListener(id, func() CalcMessage { return msg })
		padded := ctx.CreateWidget(widgets.NewPadding(graphics.EdgeInsetsAll(2), id))
		items = append(items, widgets.Flexible(padded, key.weight))
	}
	return ctx.CreateWidget(widgets.Row(widgets.FlexAlignMiddle, items...))
}

// NewCalculatorHost returns a host running a fresh calculator.
func NewCalculatorHost(opts ...engine.Option) Host {
	return NewHost[CalcMessage](&Calculator{}, opts...)
}
