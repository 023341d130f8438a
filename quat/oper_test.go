package quat

// 19 Mar 2026

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

// identRow builds an OperRow for the identity with a given id.
func identRow(id string) OperRow {
	return OperRow{ID: id, Elems: [12]string{
		"1", "0", "0",
		"0", "1", "0",
		"0", "0", "1",
		"0", "0", "0"}}
}

// transRow builds a pure translation row.
func transRow(id string, x, y, z string) OperRow {
	return OperRow{ID: id, Elems: [12]string{
		"1", "0", "0",
		"0", "1", "0",
		"0", "0", "1",
		x, y, z}}
}

func TestOperatorTable(t *testing.T) {
	rows := []OperRow{identRow("1"), transRow("2", "10", "0", "0")}
	table := NewOperatorTable(rows, nil)
	if len(table) != 2 {
		t.Fatal("want 2 operators, got", len(table))
	}
	if !table["1"].IsIdent(1e-9) {
		t.Error("operator 1 should be the identity")
	}
	if m := table["2"]; m[0][3] != 10 {
		t.Error("operator 2 lost its translation")
	}
}

func TestOperatorTableBadRow(t *testing.T) {
	bad := identRow("3")
	bad.Elems[4] = "not-a-number"
	var buf bytes.Buffer
	lg := log.New(&buf, "", 0)
	table := NewOperatorTable([]OperRow{identRow("1"), bad}, lg)
	if len(table) != 1 {
		t.Fatal("bad row should be dropped, table has", len(table))
	}
	if _, ok := table["3"]; ok {
		t.Error("operator 3 should be unresolvable")
	}
	if !strings.Contains(buf.String(), "3") {
		t.Error("warning should name the dropped operator, got", buf.String())
	}
}
