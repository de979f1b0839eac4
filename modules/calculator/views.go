package calculator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/calcdesk/handler"
	"github.com/dmitrymomot/calcdesk/pkg/display"
	"github.com/dmitrymomot/calcdesk/pkg/keypad"
)

// Views renders the calculator pages. Replace fields to restyle the app.
type Views struct {
	Page      func(PageParams) templ.Component
	Display   func(display.Frame) templ.Component
	Toast     func(handler.ErrorToastParams) templ.Component
	ErrorPage func(handler.ErrorPageParams) templ.Component
}

// PageParams contains data for rendering the calculator page.
type PageParams struct {
	Title       string
	DatastarURL string
	BasePath    string
	Layout      [][]keypad.Button
	Frame       display.Frame
	Display     func(display.Frame) templ.Component
}

// DefaultViews returns the built-in markup.
func DefaultViews() *Views {
	return &Views{
		Page:      Page,
		Display:   Display,
		Toast:     Toast,
		ErrorPage: ErrorPage,
	}
}

// Page renders the full calculator document.
func Page(p PageParams) templ.Component {
	if p.Display == nil {
		p.Display = Display
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(&b, `<title>%s</title>`, templ.EscapeString(p.Title))
		fmt.Fprintf(&b, `<script type="module" src="%s"></script>`, templ.EscapeString(p.DatastarURL))
		b.WriteString(`<style>` + stylesheet + `</style></head><body>`)

		fmt.Fprintf(&b, `<div class="calculator" data-signals="{key: '', action: '', number: '', pressed: ''}" data-init="@get('%s')" data-on:keydown__window="%s">`,
			templ.EscapeString(p.BasePath+"/stream"),
			templ.EscapeString(press(p.BasePath, "evt.key", "''", "''")),
		)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := p.Display(p.Frame).Render(ctx, w); err != nil {
			return err
		}

		b.Reset()
		b.WriteString(`<div class="buttons">`)
		for _, row := range p.Layout {
			for _, btn := range row {
				writeButton(&b, p.BasePath, btn)
			}
		}
		b.WriteString(`</div><div id="toast" class="toast-container"></div></div></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Display renders the #display element for a frame.
func Display(f display.Frame) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		class := "display"
		if f.Mode != display.Steady && f.Mode != "" {
			class += " " + string(f.Mode)
		}
		_, err := fmt.Fprintf(w,
			`<div id="display" class="%s" data-seq="%d"><div id="previous-operand" class="previous-operand">%s</div><div id="current-operand" class="current-operand">%s</div></div>`,
			class, f.Seq, templ.EscapeString(f.Previous), templ.EscapeString(f.Current),
		)
		return err
	})
}

// Toast renders an error notification into #toast.
func Toast(p handler.ErrorToastParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="toast toast-%s" role="alert">%s</div>`,
			templ.EscapeString(p.Type), templ.EscapeString(p.Message))
		return err
	})
}

// ErrorPage renders a standalone error document.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%d %s</title><style>%s</style></head><body><main class="error-page"><h1>%d</h1><p>%s</p><p class="request-id">%s</p><a href="%s">Try again</a></main></body></html>`,
			p.StatusCode, templ.EscapeString(http.StatusText(p.StatusCode)), stylesheet,
			p.StatusCode, templ.EscapeString(p.Error), templ.EscapeString(p.RequestID),
			templ.EscapeString(p.RetryURL),
		)
		return err
	})
}

func writeButton(b *strings.Builder, base string, btn keypad.Button) {
	number := buttonNumber(btn.Action)
	attr, expr := `data-action="`+templ.EscapeString(string(btn.Action))+`"`, press(base, "''", "'"+string(btn.Action)+"'", "''")
	if number != "" {
		attr, expr = `data-number="`+templ.EscapeString(number)+`"`, press(base, "''", "''", "'"+number+"'")
	}
	fmt.Fprintf(b,
		`<button type="button" class="btn %s" %s data-class:pressed="%s" data-on:click="%s">%s</button>`,
		templ.EscapeString(btn.Class), attr,
		templ.EscapeString("$pressed == '"+string(btn.Action)+"'"),
		templ.EscapeString(expr),
		templ.EscapeString(btn.Label),
	)
}

// press builds the datastar expression that sets the input signals and
// posts them.
func press(base, key, action, number string) string {
	return fmt.Sprintf("$key = %s; $action = %s; $number = %s; @post('%s/press')", key, action, number, base)
}

func buttonNumber(a keypad.Action) string {
	if a == keypad.Decimal {
		return "."
	}
	if d, ok := strings.CutPrefix(string(a), "digit-"); ok {
		return d
	}
	return ""
}

const stylesheet = `*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#1c1c1e;min-height:100vh;display:flex;align-items:center;justify-content:center}
.calculator{width:320px;background:#000;border-radius:24px;padding:20px;position:relative}
.display{min-height:120px;padding:16px 8px;text-align:right;color:#fff;display:flex;flex-direction:column;justify-content:flex-end;word-break:break-all;transition:background .3s}
.display.updated{background:#2c2c2e}
.display.error .current-operand{color:#ff453a;font-size:1.6rem}
.previous-operand{color:#8e8e93;font-size:1.2rem;min-height:1.5rem}
.current-operand{font-size:2.8rem;font-weight:300}
.buttons{display:grid;grid-template-columns:repeat(4,1fr);gap:12px;margin-top:12px}
.btn{height:64px;border:none;border-radius:32px;font-size:1.5rem;cursor:pointer;color:#fff;transition:filter .1s,transform .1s}
.btn.pressed{filter:brightness(1.4);transform:scale(.95)}
.btn-number{background:#333}
.btn-zero{grid-column:span 2}
.btn-function{background:#a5a5a5;color:#000}
.btn-operator,.btn-equals{background:#ff9f0a}
.toast-container{position:absolute;left:20px;right:20px;bottom:-56px}
.toast{padding:10px 14px;border-radius:12px;color:#fff;background:#48484a}
.toast-error{background:#ff453a}
.error-page{color:#fff;text-align:center}
.error-page a{color:#ff9f0a}`
