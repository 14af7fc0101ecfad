package extract

import (
	"strings"
	"testing"

	"focus/internal/lang"
)

func TestExtractJava(t *testing.T) {
	source := `package com.example.billing;

import java.util.List;

/** Computes invoice totals. */
public class InvoiceCalculator extends BaseCalculator implements Auditable {

    public static final int MAX_LINES = 500;

    private List<LineItem> items;

    /** Totals all line items. */
    public long total() {
        return 0;
    }

    public InvoiceCalculator(List<LineItem> items) {
        this.items = items;
    }

    private void validate() {}
}
`

	m := extractSource(t, source, lang.Java, "InvoiceCalculator.java")

	if len(m.Structs) != 1 {
		t.Fatalf("structs = %+v", m.Structs)
	}
	st := m.Structs[0]
	if st.Name != "InvoiceCalculator" {
		t.Errorf("class name = %q", st.Name)
	}
	if !strings.Contains(st.Bounds, "extends BaseCalculator") || !strings.Contains(st.Bounds, "implements Auditable") {
		t.Errorf("bounds = %q", st.Bounds)
	}
	if st.Doc != "Computes invoice totals." {
		t.Errorf("doc = %q", st.Doc)
	}

	// items is private; MAX_LINES keeps its static final modifiers.
	if len(st.Fields) != 1 || st.Fields[0].Name != "MAX_LINES" {
		t.Fatalf("fields = %+v", st.Fields)
	}
	if st.Fields[0].Type != "static final int" {
		t.Errorf("field type = %q", st.Fields[0].Type)
	}

	// total and the constructor are public; validate is not.
	if len(st.Methods) != 2 {
		t.Fatalf("methods = %+v", st.Methods)
	}
	if st.Methods[0].Name != "total" || st.Methods[1].Name != "InvoiceCalculator" {
		t.Errorf("method names = %q, %q", st.Methods[0].Name, st.Methods[1].Name)
	}
}

func TestExtractJavaInterfaceAndEnum(t *testing.T) {
	source := `public interface Auditable {
    String AUDIT_TAG = "audit";

    void audit(String event);
}
`
	m := extractSource(t, source, lang.Java, "Auditable.java")

	if len(m.Traits) != 1 {
		t.Fatalf("traits = %+v", m.Traits)
	}
	tr := m.Traits[0]
	if len(tr.Fields) != 1 || tr.Fields[0].Name != "AUDIT_TAG" {
		t.Errorf("fields = %+v", tr.Fields)
	}
	if len(tr.Methods) != 1 || tr.Methods[0].Name != "audit" {
		t.Errorf("methods = %+v", tr.Methods)
	}

	enumSource := `public enum Status {
    OPEN,
    CLOSED;

    public boolean terminal() {
        return this == CLOSED;
    }
}
`
	m = extractSource(t, enumSource, lang.Java, "Status.java")

	if len(m.Enums) != 1 {
		t.Fatalf("enums = %+v", m.Enums)
	}
	e := m.Enums[0]
	if len(e.Variants) != 2 {
		t.Errorf("variants = %+v", e.Variants)
	}
	if len(e.Methods) != 1 || e.Methods[0].Name != "terminal" {
		t.Errorf("enum methods = %+v", e.Methods)
	}
}

func TestExtractJavaAnnotations(t *testing.T) {
	source := `@Service
public class TaskService {
    public void run() {}
}
`
	m := extractSource(t, source, lang.Java, "TaskService.java")

	if len(m.Structs) != 1 {
		t.Fatalf("structs = %+v", m.Structs)
	}
	derives := m.Structs[0].Derives
	var hasAnnotation, hasPublic bool
	for _, d := range derives {
		if d == "@Service" {
			hasAnnotation = true
		}
		if d == "public" {
			hasPublic = true
		}
	}
	if !hasAnnotation || !hasPublic {
		t.Errorf("derives = %+v", derives)
	}
}
