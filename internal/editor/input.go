package editor

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/inamate/drafter/internal/geom"
)

// Status is the outcome of an input request.
type Status int

const (
	Accepted Status = iota
	Keyword
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Keyword:
		return "keyword"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Reason records what finished an input request.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonEscape: the user pressed Escape.
	ReasonEscape
	// ReasonEnter: Enter or a secondary click on an empty buffer.
	ReasonEnter
	// ReasonSpace: Space on an empty buffer.
	ReasonSpace
	// ReasonInit: the request was satisfied before waiting for input.
	ReasonInit
	// ReasonCoords: a primary click supplied the value.
	ReasonCoords
	// ReasonText: typed text supplied the value.
	ReasonText
	// ReasonAbort: the editor shut down or the input handler failed.
	ReasonAbort
)

func (r Reason) String() string {
	switch r {
	case ReasonEscape:
		return "escape"
	case ReasonEnter:
		return "enter"
	case ReasonSpace:
		return "space"
	case ReasonInit:
		return "init"
	case ReasonCoords:
		return "coords"
	case ReasonText:
		return "text"
	case ReasonAbort:
		return "abort"
	}
	return "none"
}

// InputResult is returned by every getter.
type InputResult[T any] struct {
	Status  Status
	Value   T
	Keyword string
	Reason  Reason
}

func (r InputResult[T]) IsAccepted() bool { return r.Status == Accepted }
func (r InputResult[T]) IsKeyword() bool { return r.Status == Keyword }
func (r InputResult[T]) IsCancelled() bool { return r.Status == Cancelled }

func accepted[T any](v T, reason Reason) InputResult[T] {
	return InputResult[T]{Status: Accepted, Value: v, Reason: reason}
}

func keyword[T any](kw string, reason Reason) InputResult[T] {
	return InputResult[T]{Status: Keyword, Keyword: kw, Reason: reason}
}

func cancelled[T any](reason Reason) InputResult[T] {
	return InputResult[T]{Status: Cancelled, Reason: reason}
}

// Options are shared by all getters.
type Options struct {
	Message      string
	BasePoint    geom.Point2D
	HasBasePoint bool

	keywords       []string
	defaultKeyword string
}

func NewOptions(message string) *Options {
	return &Options{Message: message}
}

// SetBasePoint anchors rubber-band previews and relative input at p.
func (o *Options) SetBasePoint(p geom.Point2D) {
	o.BasePoint = p
	o.HasBasePoint = true
}

// AddKeyword registers kw. Its alias is kw with the lowercase letters
// removed, so "Rotate" is also matched by "r".
func (o *Options) AddKeyword(kw string, isDefault bool) {
	o.keywords = append(o.keywords, kw)
	if isDefault {
		o.defaultKeyword = kw
	}
}

func (o *Options) Keywords() []string {
	return o.keywords
}

func (o *Options) DefaultKeyword() string {
	return o.defaultKeyword
}

// MatchKeyword resolves typed text against the registered keywords: the
// default for empty text, then an exact alias match, then a prefix of the
// full keyword. Comparisons ignore case.
func (o *Options) MatchKeyword(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return o.defaultKeyword, o.defaultKeyword != ""
	}
	for _, kw := range o.keywords {
		if alias := keywordAlias(kw); alias != "" && strings.EqualFold(alias, text) {
			return kw, true
		}
	}
	folder := cases.Fold()
	folded := folder.String(text)
	for _, kw := range o.keywords {
		if strings.HasPrefix(folder.String(kw), folded) {
			return kw, true
		}
	}
	return "", false
}

func keywordAlias(kw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLower(r) {
			return -1
		}
		return r
	}, kw)
}

// FullPrompt renders "Message [K1, K2] <Default>: ".
func (o *Options) FullPrompt() string {
	return o.prompt(true)
}

func (o *Options) prompt(withKeywords bool) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(o.Message, " :"))
	if withKeywords && len(o.keywords) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(o.keywords, ", "))
		b.WriteString("]")
		if o.defaultKeyword != "" {
			b.WriteString(" <")
			b.WriteString(o.defaultKeyword)
			b.WriteString(">")
		}
	}
	b.WriteString(": ")
	return b.String()
}

// JigOptions adds a preview callback that receives the live value while
// the getter waits. A non-nil error from Validate rejects a clicked or typed
// value and the getter keeps waiting.
type JigOptions[T any] struct {
	Options
	Jig      func(T)
	Validate func(T) error
}

func (o *JigOptions[T]) check(v T) error {
	if o.Validate == nil {
		return nil
	}
	return o.Validate(v)
}

func NewJigOptions[T any](message string, jig func(T)) *JigOptions[T] {
	return &JigOptions[T]{Options: Options{Message: message}, Jig: jig}
}

// NumberOptions restricts the sign of numeric input. NewNumberOptions
// allows every value.
type NumberOptions struct {
	Options
	AllowZero     bool
	AllowNegative bool
	AllowPositive bool
}

func NewNumberOptions(message string) *NumberOptions {
	return &NumberOptions{
		Options:       Options{Message: message},
		AllowZero:     true,
		AllowNegative: true,
		AllowPositive: true,
	}
}

func (o *NumberOptions) check(v float64) error {
	switch {
	case v == 0 && !o.AllowZero:
		return invalidInput("zero is not allowed")
	case v < 0 && !o.AllowNegative:
		return invalidInput("negative values are not allowed")
	case v > 0 && !o.AllowPositive:
		return invalidInput("positive values are not allowed")
	}
	return nil
}

// FilenameOptions configures GetFilename. Filter is passed to the file
// dialog, e.g. "Drawings|*.json".
type FilenameOptions struct {
	Options
	Filter string
	Save   bool
}

func NewFilenameOptions(message string, save bool) *FilenameOptions {
	return &FilenameOptions{Options: Options{Message: message}, Save: save}
}
