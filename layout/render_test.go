package layout

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeptools/gw-invoice/colors"
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/pdfs"
	"github.com/zeptools/gw-invoice/pdfs/impls/recorder"
)

var update = flag.Bool("update", false, "rewrite golden files")

func fixture(t invoice.Template) *invoice.Invoice {
	return &invoice.Invoice{
		Template: t,
		Company: invoice.Company{
			Name:    "Acme Studio",
			Address: "1 Main St\nSpringfield",
			Email:   "billing@acme.test",
			Phone:   "+1 555 0100",
		},
		Client: invoice.Client{
			Name:    "Globex",
			Address: "42 Elm Rd\nShelbyville",
			Email:   "ap@globex.test",
		},
		Number:   "INV-001",
		Date:     "2026-01-15",
		DueDate:  "2026-02-14",
		Currency: "$",
		Items: []invoice.LineItem{
			{Description: "Design", Quantity: 2, UnitPrice: 150},
			{Description: "Hosting", Quantity: 1, UnitPrice: 50},
		},
		TaxRate:             10,
		PrimaryColor:        "#2563eb",
		SecondaryColor:      "#f1f5f9",
		Notes:               "Thanks for the prompt payment.",
		Terms:               "Payment is due within 30 days.",
		PaymentInstructions: "Bank transfer to ACME, IBAN DE00 0000 0000.",
	}
}

func render(t *testing.T, inv *invoice.Invoice) *recorder.Writer {
	t.Helper()
	w := recorder.New(pdfs.A4Size, recorder.Monospace(0.5))
	if err := Render(w, inv); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := w.Err(); err != nil {
		t.Fatalf("writer misuse: %v", err)
	}
	return w
}

func mustFind(t *testing.T, w *recorder.Writer, text string) recorder.Instruction {
	t.Helper()
	in, ok := w.Find(text)
	if !ok {
		t.Fatalf("text %q not drawn; have %q", text, w.Texts())
	}
	return in
}

func assertAt(t *testing.T, in recorder.Instruction, x, y float64) {
	t.Helper()
	if in.X != x || in.Y != y {
		t.Errorf("%q at (%v, %v), want (%v, %v)", in.Text, in.X, in.Y, x, y)
	}
}

func TestRender_ScenarioAmounts(t *testing.T) {
	for _, tpl := range invoice.Templates {
		t.Run(string(tpl), func(t *testing.T) {
			texts := strings.Join(render(t, fixture(tpl)).Texts(), "\n")
			for _, want := range []string{"$300.00", "$50.00", "$350.00", "$35.00", "$385.00", "INV-001"} {
				if !strings.Contains(texts, want) {
					t.Errorf("missing %q", want)
				}
			}
		})
	}
}

func TestRender_ModernCoordinates(t *testing.T) {
	w := render(t, fixture(invoice.TemplateModern))

	assertAt(t, mustFind(t, w, "Acme Studio"), 50, 782)
	assertAt(t, mustFind(t, w, "INVOICE"), 445, 782)
	assertAt(t, mustFind(t, w, "1 Main St"), 50, 752)
	assertAt(t, mustFind(t, w, "Springfield"), 50, 738)
	assertAt(t, mustFind(t, w, "billing@acme.test"), 50, 724)
	assertAt(t, mustFind(t, w, "+1 555 0100"), 50, 710)
	assertAt(t, mustFind(t, w, "Due: 2026-02-14"), 395, 724)
	assertAt(t, mustFind(t, w, "BILL TO"), 50, 642)

	// table head at 522, rows at 487 and 462
	assertAt(t, mustFind(t, w, "Description"), 60, 522)
	assertAt(t, mustFind(t, w, "Design"), 60, 487)
	assertAt(t, mustFind(t, w, "Hosting"), 60, 462)

	// totals continue from the cursor the rows leave (437)
	assertAt(t, mustFind(t, w, "Subtotal:"), 380, 417)
	assertAt(t, mustFind(t, w, "Tax (10%):"), 380, 399)
	total := mustFind(t, w, "TOTAL:")
	assertAt(t, total, 380, 377)
	if total.Color != colors.White || total.Font != "Helvetica/B" || total.Size != 12 {
		t.Errorf("TOTAL: drawn as %v", total)
	}
	assertAt(t, mustFind(t, w, "$385.00"), 480, 377)

	assertAt(t, mustFind(t, w, "Notes:"), 50, 120)
	assertAt(t, mustFind(t, w, "Payment Instructions:"), 320, 120)
	assertAt(t, mustFind(t, w, "Payment is due within 30 days."), 50, 40)
}

func TestRender_DecorationsFirst(t *testing.T) {
	for _, tpl := range invoice.Templates {
		t.Run(string(tpl), func(t *testing.T) {
			ins := render(t, fixture(tpl)).Instructions
			if ins[0].Op != recorder.OpPage || ins[0].W != 595 || ins[0].H != 842 {
				t.Fatalf("first instruction = %v", ins[0])
			}
			i := 1
			for i < len(ins) && ins[i].Op == recorder.OpFont {
				i++
			}
			if i < 3 {
				t.Errorf("embedded %d fonts", i-1)
			}
			if ins[i].Op != recorder.OpRect {
				t.Errorf("first drawing = %v, want a decoration rect", ins[i])
			}
		})
	}
}

func TestRender_UnknownTemplateFallsBackToModern(t *testing.T) {
	want := render(t, fixture(invoice.TemplateModern)).Dump()
	for _, tpl := range []invoice.Template{"", "bogus", "MODERN"} {
		if got := render(t, fixture(tpl)).Dump(); got != want {
			t.Errorf("template %q does not render as modern", tpl)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	for _, tpl := range invoice.Templates {
		a := render(t, fixture(tpl)).Dump()
		b := render(t, fixture(tpl)).Dump()
		if a != b {
			t.Errorf("%s: two renders differ", tpl)
		}
	}
}

func TestRender_OptionalSectionsOmitted(t *testing.T) {
	for _, tpl := range invoice.Templates {
		inv := fixture(tpl)
		inv.Notes = ""
		inv.PaymentInstructions = ""
		inv.Terms = ""
		texts := render(t, inv).Texts()
		for _, s := range texts {
			switch s {
			case "Notes:", "Notes", "NOTES", "Payment Instructions:", "Payment Information", "PAYMENT":
				t.Errorf("%s: drew %q with no content", tpl, s)
			}
			if strings.Contains(s, "Payment is due") {
				t.Errorf("%s: drew terms %q", tpl, s)
			}
		}
	}
}

func TestRender_NoEmptyTexts(t *testing.T) {
	inv := fixture(invoice.TemplateModern)
	inv.Company.Phone = ""
	inv.Client.Address = ""
	for _, s := range render(t, inv).Texts() {
		if s == "" {
			t.Fatal("drew an empty string")
		}
	}
}

func TestRender_DescriptionCapped(t *testing.T) {
	long := strings.Repeat("abcdefghij", 6)
	caps := map[invoice.Template]int{
		invoice.TemplateModern:    40,
		invoice.TemplateCorporate: 35,
		invoice.TemplateCreative:  35,
		invoice.TemplateClassic:   35,
		invoice.TemplateStartup:   25,
	}
	for tpl, n := range caps {
		inv := fixture(tpl)
		inv.Items = []invoice.LineItem{{Description: long, Quantity: 1, UnitPrice: 1}}
		w := render(t, inv)
		if _, ok := w.Find(long[:n]); !ok {
			t.Errorf("%s: want description cut to %d runes", tpl, n)
		}
	}
}

func TestRender_CorporateUpperCasesCompany(t *testing.T) {
	inv := fixture(invoice.TemplateCorporate)
	inv.Company.Name = "Straße Werke"
	w := render(t, inv)
	in := mustFind(t, w, "STRASSE WERKE")
	assertAt(t, in, 50, 792)
	mustFind(t, w, "billing@acme.test | +1 555 0100")
}

func TestRender_CorporateZebraOnEvenRows(t *testing.T) {
	inv := fixture(invoice.TemplateCorporate)
	inv.Items = append(inv.Items, invoice.LineItem{Description: "Support", Quantity: 3, UnitPrice: 10})
	zebra := colors.Gray(0.97)
	var ys []float64
	for _, in := range render(t, inv).Instructions {
		if in.Op == recorder.OpRect && in.Fill != nil && *in.Fill == zebra {
			ys = append(ys, in.Y)
		}
	}
	// rows at 512, 487, 462
	if len(ys) != 2 || ys[0] != 507 || ys[1] != 457 {
		t.Errorf("zebra rects at %v", ys)
	}
}

func TestRender_CreativeGradient(t *testing.T) {
	inv := fixture(invoice.TemplateCreative)
	primary := colors.HexToRGB(inv.PrimaryColor)
	secondary := colors.HexToRGB(inv.SecondaryColor)

	var strips []recorder.Instruction
	for _, in := range render(t, inv).Instructions {
		if in.Op == recorder.OpRect && in.H == 8 && in.W == 595 {
			strips = append(strips, in)
		}
	}
	if len(strips) != 20 {
		t.Fatalf("strips = %d", len(strips))
	}
	if strips[0].Y != 682 || strips[19].Y != 834 {
		t.Errorf("band spans %v..%v", strips[0].Y, strips[19].Y)
	}
	if *strips[0].Fill != primary {
		t.Errorf("first strip = %v, want primary", *strips[0].Fill)
	}
	if *strips[10].Fill != colors.Lerp(primary, secondary, 0.5) {
		t.Errorf("middle strip = %v", *strips[10].Fill)
	}
}

func TestRender_ClassicFrameAndCentering(t *testing.T) {
	inv := fixture(invoice.TemplateClassic)
	inv.Items = append(inv.Items, invoice.LineItem{Description: "Support", Quantity: 3, UnitPrice: 10})
	w := render(t, inv)

	// header row at 462; frame top 477, height 110 + 3*28
	var frame *recorder.Instruction
	for i, in := range w.Instructions {
		if in.Op == recorder.OpRect && in.X == 55 {
			frame = &w.Instructions[i]
			break
		}
	}
	if frame == nil {
		t.Fatal("no table frame")
	}
	if frame.Y != 283 || frame.W != 485 || frame.H != 194 || frame.Fill != nil {
		t.Errorf("frame = %v", *frame)
	}

	// 13 runes * 0.5 * 18
	assertAt(t, mustFind(t, w, "I N V O I C E"), (595-117)/2.0, 672)

	thanks := mustFind(t, w, "Thank you for your business")
	if thanks.Y != 40 || thanks.Font != "Times/I" {
		t.Errorf("closing line = %v", thanks)
	}
}

func TestRender_StartupSidebar(t *testing.T) {
	w := render(t, fixture(invoice.TemplateStartup))
	assertAt(t, mustFind(t, w, "PAYMENT"), 20, 671)
	assertAt(t, mustFind(t, w, "#INV-001"), 200, 752)
	due := mustFind(t, w, "Due: 2026-02-14")
	if due.Color != (colors.RGB{R: 0.8, G: 0.2, B: 0.2}) {
		t.Errorf("due color = %v", due.Color)
	}

	inv := fixture(invoice.TemplateStartup)
	inv.PaymentInstructions = ""
	if _, ok := render(t, inv).Find("PAYMENT"); ok {
		t.Error("sidebar payment block drawn without instructions")
	}
}

func TestRender_ManyItemsStillRenders(t *testing.T) {
	inv := fixture(invoice.TemplateModern)
	inv.Items = nil
	for range 40 {
		inv.Items = append(inv.Items, invoice.LineItem{Description: "Row", Quantity: 1, UnitPrice: 1})
	}
	render(t, inv)
}

func TestRender_Golden(t *testing.T) {
	for _, tpl := range invoice.Templates {
		t.Run(string(tpl), func(t *testing.T) {
			got := render(t, fixture(tpl)).Dump()
			path := filepath.Join("testdata", string(tpl)+".golden")
			if *update {
				if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}
			want, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("%v; run go test ./layout -update to create it", err)
			}
			if got != string(want) {
				t.Errorf("%s differs from golden; rerun with -update if the change is intended\n%s", path, got)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	if got := Default.Templates(); len(got) != 5 {
		t.Fatalf("templates = %v", got)
	}
	for _, tpl := range invoice.Templates {
		if s := StyleFor(tpl); s.Template != tpl {
			t.Errorf("StyleFor(%s) = %s", tpl, s.Template)
		}
	}
	if StyleFor("nope") != Modern {
		t.Error("unknown template did not fall back to Modern")
	}

	r := NewRegistry(invoice.TemplateClassic, Classic, Startup)
	r.Remove(invoice.TemplateClassic)
	r.Remove(invoice.TemplateStartup)
	if _, ok := r.Get(invoice.TemplateStartup); ok {
		t.Error("startup still registered")
	}
	if r.Lookup(invoice.TemplateStartup) != Classic {
		t.Error("fallback was removed")
	}
	r.Store(Modern)
	if r.Lookup(invoice.TemplateModern) != Modern {
		t.Error("stored style not found")
	}
}

func TestRender_PaymentWithoutNotes(t *testing.T) {
	inv := fixture(invoice.TemplateModern)
	inv.Notes = ""
	w := render(t, inv)
	if _, ok := w.Find("Notes:"); ok {
		t.Error("notes heading drawn for empty notes")
	}
	assertAt(t, mustFind(t, w, "Payment Instructions:"), 320, 120)
	assertAt(t, mustFind(t, w, "Bank transfer to ACME, IBAN DE00 0000 0000."), 320, 106)
}
