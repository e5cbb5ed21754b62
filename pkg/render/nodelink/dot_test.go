package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/circuitdraw/pkg/element"
	"github.com/matzehuels/circuitdraw/pkg/geom"
	"github.com/matzehuels/circuitdraw/pkg/scene"
)

func rcScene(t *testing.T) *scene.Scene {
	t.Helper()
	place := func(tmpl *element.Template, id string, at geom.Point, a geom.Angle, seq int) *scene.Component {
		inst, err := element.Instantiate(tmpl, at, a, "")
		if err != nil {
			t.Fatal(err)
		}
		inst.ID = id
		return scene.NewComponent(inst, []scene.Label{{Text: "1k"}}, seq)
	}
	r, _ := element.TwoTerminal(element.KindResistor, 2, element.Params{})
	c, _ := element.TwoTerminal(element.KindCapacitor, 2, element.Params{})
	s, err := scene.New([]scene.Item{
		place(r, "R1", geom.Pt(0, 0), geom.Right, 1),
		place(c, "C1", geom.Pt(2, 0), geom.Down, 2),
		place(element.Ground(), "", geom.Pt(2, -2), 0, 3),
	}, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(rcScene(t), Options{})

	for _, want := range []string{
		"graph G {",
		`"R1" [label="R1"]`,
		`"C1" [label="C1"]`,
		`"ground#3"`,
		`"R1" -- "net1"`,
		`"C1" -- "net1"`,
		`"C1" -- "net2"`,
		`"ground#3" -- "net2"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "net3") {
		t.Error("ToDOT() kept a single-terminal net")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(rcScene(t), Options{Detailed: true})

	if !strings.Contains(dot, `taillabel="end"`) {
		t.Error("ToDOT() detailed output missing anchor labels")
	}
	if !strings.Contains(dot, `R1\nresistor\n1k`) {
		t.Errorf("ToDOT() detailed label missing kind and text:\n%s", dot)
	}
	if !strings.Contains(dot, "net3") {
		t.Error("ToDOT() detailed output dropped the dangling R1.start net")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if string(normalizeViewBox([]byte("<svg>"))) != "<svg>" {
		t.Error("normalizeViewBox() changed svg without viewBox")
	}
}
