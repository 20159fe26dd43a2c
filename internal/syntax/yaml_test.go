package syntax

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

const yamlProgram = `statements:
  - declare: {name: who, type: string, value: {string: world}}
  - declare: {name: n, type: atomic, value: {int: -4}}
  - declare: {name: raw, type: buffer}
  - routine:
      name: greet
      body:
        - out:
            interp:
              - text: "hello "
              - ref: who
  - call: greet
  - out: {rpl: {in: {name: who}, target: {string: o}, with: {string: "0"}}}
  - out: {dec: {in: {enc: {in: {name: who}, key: {string: k}}}, key: {string: k}}}
  - out: {arith: {op: "+", x: {int: 1}, y: {paren: {int: 2}}}}
  - out: {rnd: {min: {int: 1}, max: {int: 3}, charset: {string: ab}}}
`

func TestDecodeYAML(t *testing.T) {
	prog, err := DecodeYAML(strings.NewReader(yamlProgram), "prog.yaml")
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, s := range prog.Stmts {
		got = append(got, stmtSummary(s))
	}
	want := []string{
		`string who = "world"`,
		"atomic n = -4",
		"buffer raw",
		`routine greet {out "hello ${who}"}`,
		"call greet",
		`out rpl(who, "o", "0")`,
		`out dec(enc(who, "k"), "k")`,
		"out 1 + (2)",
		`out rnd(1, 3, "ab")`,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d statements %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stmt %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func stmtSummary(s Stmt) string {
	switch s := s.(type) {
	case *DeclStmt:
		if s.Value == nil {
			return s.Type.String() + " " + s.Name.Value
		}
		return s.Type.String() + " " + s.Name.Value + " = " + ExprString(s.Value)
	case *RoutineDecl:
		var body []string
		for _, b := range s.Body {
			body = append(body, stmtSummary(b))
		}
		return "routine " + s.Name.Value + " {" + strings.Join(body, "; ") + "}"
	case *CallStmt:
		return "call " + s.Name.Value
	case *OutStmt:
		return "out " + ExprString(s.X)
	}
	return "?"
}

func TestDecodeYAMLPositions(t *testing.T) {
	prog, err := DecodeYAML(strings.NewReader(yamlProgram), "prog.yaml")
	if err != nil {
		t.Fatal(err)
	}
	d := prog.Stmts[0].(*DeclStmt)
	if d.Pos().String() != "prog.yaml:2:5" {
		t.Errorf("decl pos = %s, want prog.yaml:2:5", d.Pos())
	}
	r := prog.Stmts[3].(*RoutineDecl)
	out := r.Body[0].(*OutStmt)
	if out.Pos().Line() != 8 {
		t.Errorf("routine body pos = %s, want line 8", out.Pos())
	}
}

func TestDecodeYAMLEmpty(t *testing.T) {
	prog, err := DecodeYAML(strings.NewReader(""), "empty.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(prog.Stmts) != 0 {
		t.Errorf("got %d statements, want 0", len(prog.Stmts))
	}
}

func TestDecodeYAMLNestedRoutine(t *testing.T) {
	src := "statements: [{routine: {name: a, body: [{routine: {name: b, body: [{out: {string: hi}}]}}]}}]"
	prog, err := DecodeYAML(strings.NewReader(src), "nested.yaml")
	if err != nil {
		t.Fatal(err)
	}
	outer := prog.Stmts[0].(*RoutineDecl)
	if len(outer.Body) != 1 {
		t.Fatalf("outer body has %d statements, want 1", len(outer.Body))
	}
	if inner, ok := outer.Body[0].(*RoutineDecl); !ok || inner.Name.Value != "b" || len(inner.Body) != 1 {
		t.Errorf("outer body = %#v, want routine b with one statement", outer.Body[0])
	}
}

func TestDecodeYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"not_yaml", "statements: [", "empty.yaml"},
		{"unknown_top", "programs: []", `unknown field "programs"`},
		{"statements_not_list", "statements: {}", "expected a list of statements"},
		{"unknown_stmt", "statements: [{loop: x}]", `unknown statement kind "loop"`},
		{"two_keys", "statements: [{out: {int: 1}, call: x}]", "exactly one key"},
		{"bad_type", "statements: [{declare: {name: a, type: float}}]", `unknown declaration type "float"`},
		{"missing_name", "statements: [{declare: {type: string}}]", `missing field "name"`},
		{"keyword_name", "statements: [{call: out}]", `invalid identifier "out"`},
		{"bad_ident", "statements: [{call: 9lives}]", `invalid identifier "9lives"`},
		{"unknown_expr", "statements: [{out: {float: 1.5}}]", `unknown expression kind "float"`},
		{"bad_int", "statements: [{out: {int: abc}}]", `invalid integer "abc"`},
		{"bad_op", `statements: [{out: {arith: {op: "%", x: {int: 1}, y: {int: 2}}}}]`, `unknown operator "%"`},
		{"missing_arg", "statements: [{out: {rpl: {in: {name: a}, target: {string: b}}}}]", `missing field "with"`},
		{"extra_arg", "statements: [{out: {enc: {in: {name: a}, key: {name: b}, iv: {name: c}}}}]", `unknown field "iv"`},
		{"bad_fragment", "statements: [{out: {interp: [{code: x}]}}]", `unknown fragment kind "code"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML(strings.NewReader(tt.src), "empty.yaml")
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	src := `string who = "world"
atomic n = 0x10
buffer raw
routine greet {
  out "hi ${who}, \$1"
  greet!
}
out rnd(1, n, "012")
out tlo(tup(rev(len("abc"))))
out enc("a\tb", who) + 2
`
	prog := parseProgram(t, src)

	var buf bytes.Buffer
	if err := EncodeYAML(&buf, prog); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeYAML(&buf, "rt.yaml")
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}

	if len(back.Stmts) != len(prog.Stmts) {
		t.Fatalf("got %d statements, want %d", len(back.Stmts), len(prog.Stmts))
	}
	for i := range prog.Stmts {
		want, got := stmtSummary(prog.Stmts[i]), stmtSummary(back.Stmts[i])
		if got != want {
			t.Errorf("stmt %d = %s, want %s", i, got, want)
		}
	}
}

func TestEncodeYAMLQuotesNumericStrings(t *testing.T) {
	prog := parseProgram(t, `out "0"`)
	var buf bytes.Buffer
	if err := EncodeYAML(&buf, prog); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeYAML(&buf, "q.yaml")
	if err != nil {
		t.Fatal(err)
	}
	lit := back.Stmts[0].(*OutStmt).X.(*BasicLit)
	if lit.Kind != StringLit || lit.Value != "0" {
		t.Errorf("got %v %q, want string \"0\"", lit.Kind, lit.Value)
	}
}

func TestFprintJSON(t *testing.T) {
	prog := parseProgram(t, `routine r { out rev("x") }`)
	var buf bytes.Buffer
	if err := FprintJSON(&buf, prog); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Type  string `json:"type"`
		Stmts []struct {
			Type string `json:"type"`
			Name string `json:"name"`
			Body []struct {
				Type string `json:"type"`
				X    struct {
					Type string `json:"type"`
					Op   string `json:"op"`
				} `json:"x"`
			} `json:"body"`
		} `json:"stmts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Type != "Program" || len(doc.Stmts) != 1 {
		t.Fatalf("unexpected document: %s", buf.String())
	}
	r := doc.Stmts[0]
	if r.Type != "RoutineDecl" || r.Name != "r" || len(r.Body) != 1 {
		t.Fatalf("unexpected routine: %+v", r)
	}
	if r.Body[0].X.Type != "UnaryExpr" || r.Body[0].X.Op != "rev" {
		t.Errorf("unexpected body: %+v", r.Body[0])
	}
}
