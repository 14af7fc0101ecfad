package extract

import (
	"strings"
	"testing"

	"focus/internal/lang"
)

func TestExtractTypeScript(t *testing.T) {
	source := `// User domain services.

export interface User {
  id: string
  name: string
  email?: string
}

export type UserID = string

export enum Role {
  Admin,
  Member,
}

// UserService loads and stores users.
export class UserService {
  timeout: number
  private cache: Map<string, User>

  // find loads one user.
  async find(id: string): Promise<User> {
    return this.cache.get(id)
  }

  private evict(id: string): void {}
}

// loadAll fetches every user.
export async function loadAll(): Promise<User[]> {
  return []
}

const internalHelper = () => 42
`

	m := extractSource(t, source, lang.TypeScript, "users.ts")

	if len(m.Traits) != 1 || m.Traits[0].Name != "User" {
		t.Fatalf("traits = %+v", m.Traits)
	}
	if len(m.Traits[0].Fields) != 3 {
		t.Errorf("interface fields = %+v", m.Traits[0].Fields)
	}

	if len(m.TypeAliases) != 1 || m.TypeAliases[0].Name != "UserID" {
		t.Errorf("aliases = %+v", m.TypeAliases)
	}
	if len(m.Enums) != 1 || len(m.Enums[0].Variants) != 2 {
		t.Errorf("enums = %+v", m.Enums)
	}

	if len(m.Structs) != 1 {
		t.Fatalf("structs = %+v", m.Structs)
	}
	st := m.Structs[0]
	if st.Name != "UserService" {
		t.Errorf("class name = %q", st.Name)
	}
	// cache is private and must not appear.
	if len(st.Fields) != 1 || st.Fields[0].Name != "timeout" {
		t.Errorf("class fields = %+v", st.Fields)
	}
	// evict is private.
	if len(st.Methods) != 1 || st.Methods[0].Name != "find" {
		t.Fatalf("class methods = %+v", st.Methods)
	}
	if !st.Methods[0].Async {
		t.Error("find should be async")
	}

	// Non-exported bindings never surface.
	if len(m.Functions) != 1 || m.Functions[0].Name != "loadAll" {
		t.Fatalf("functions = %+v", m.Functions)
	}
	if !strings.HasPrefix(m.Functions[0].Signature, "export ") {
		t.Errorf("function signature should carry export: %q", m.Functions[0].Signature)
	}
}

func TestExtractTypeScriptReexports(t *testing.T) {
	source := `export * from "./models"
export { UserService as Service } from "./service"
`
	m := extractSource(t, source, lang.TypeScript, "index.ts")

	if len(m.Reexports) != 2 {
		t.Fatalf("reexports = %+v", m.Reexports)
	}
	if !strings.Contains(m.Reexports[0], `export * from "./models"`) {
		t.Errorf("reexport[0] = %q", m.Reexports[0])
	}
}

func TestExtractJavaScript(t *testing.T) {
	source := `// Math helpers.

// add sums two numbers.
export function add(a, b) {
  return a + b
}

export const multiply = (a, b) => a * b

export const VERSION = "2.1.0"

function privateHelper() {}
`

	m := extractSource(t, source, lang.JavaScript, "math.js")

	if len(m.Functions) != 2 {
		t.Fatalf("functions = %+v", m.Functions)
	}
	if m.Functions[0].Name != "add" || m.Functions[1].Name != "multiply" {
		t.Errorf("function names = %q, %q", m.Functions[0].Name, m.Functions[1].Name)
	}
	if m.Functions[0].Doc != "add sums two numbers." {
		t.Errorf("doc = %q", m.Functions[0].Doc)
	}

	if len(m.Constants) != 1 || m.Constants[0].Name != "VERSION" {
		t.Errorf("constants = %+v", m.Constants)
	}
}

func TestExtractTSX(t *testing.T) {
	source := `export interface Props {
  title: string
}

export function Banner(props: Props) {
  return <h1>{props.title}</h1>
}
`

	m := extractSource(t, source, lang.TypeScript, "banner.tsx")

	if len(m.Traits) != 1 || m.Traits[0].Name != "Props" {
		t.Errorf("traits = %+v", m.Traits)
	}
	if len(m.Functions) != 1 || m.Functions[0].Name != "Banner" {
		t.Errorf("functions = %+v", m.Functions)
	}
}
