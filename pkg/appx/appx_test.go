// pkg/appx/appx_test.go
package appx

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/UriCaBa/initio/pkg/core"
	"github.com/UriCaBa/initio/pkg/process"
	"github.com/UriCaBa/initio/pkg/validate"
)

type fakeShell struct {
	scripts []string
	respond func(script string) (*process.Result, error)
}

func (f *fakeShell) Run(ctx context.Context, name string, args []string, timeout time.Duration) (*process.Result, error) {
	return f.RunLines(ctx, name, args, timeout, nil)
}

func (f *fakeShell) RunLines(_ context.Context, _ string, args []string, _ time.Duration, _ process.LineFunc) (*process.Result, error) {
	script := args[len(args)-1]
	f.scripts = append(f.scripts, script)
	return f.respond(script)
}

func TestKnownDefinitionsAreValid(t *testing.T) {
	if len(Known) < 40 {
		t.Fatalf("only %d known packages", len(Known))
	}
	seen := map[string]bool{}
	categories := map[string]bool{}
	for _, d := range Known {
		if err := validate.PackageName(d.PackageName); err != nil {
			t.Errorf("%s: %v", d.Name, err)
		}
		key := strings.ToLower(d.PackageName)
		if seen[key] {
			t.Errorf("duplicate package %s", d.PackageName)
		}
		seen[key] = true
		categories[d.Category] = true
	}
	for _, c := range []string{CategoryGames, CategorySocial, CategoryMicrosoft, CategoryPromotions} {
		if !categories[c] {
			t.Errorf("category %q has no entries", c)
		}
	}
}

func TestItemsAreRemovalTargets(t *testing.T) {
	items := Items()
	if len(items) != len(Known) {
		t.Fatalf("len = %d", len(items))
	}
	if items[0].Flow != core.FlowRemove || items[0].ID != Known[0].PackageName {
		t.Fatalf("first item = %+v", items[0])
	}
}

func TestScriptArgs(t *testing.T) {
	got := strings.Join(ScriptArgs("Get-AppxPackage"), " ")
	if got != "-NoProfile -NonInteractive -ExecutionPolicy Bypass -Command Get-AppxPackage" {
		t.Fatalf("ScriptArgs = %q", got)
	}
}

func TestParseNamesJSON(t *testing.T) {
	names, err := ParseNamesJSON(`[{"Name":"Microsoft.BingNews"},{"Name":"king.com.CandyCrushSaga"},{"Name":""}]`)
	if err != nil {
		t.Fatalf("ParseNamesJSON: %v", err)
	}
	if len(names) != 2 || names[1] != "king.com.CandyCrushSaga" {
		t.Fatalf("names = %v", names)
	}

	single, err := ParseNamesJSON(`{"Name":"Microsoft.YourPhone"}`)
	if err != nil || len(single) != 1 || single[0] != "Microsoft.YourPhone" {
		t.Fatalf("single = %v, %v", single, err)
	}

	if _, err := ParseNamesJSON("Microsoft.BingNews\r\n"); err == nil {
		t.Fatal("plain text accepted as JSON")
	}
}

func TestInstalledNamesFallsBackToText(t *testing.T) {
	shell := &fakeShell{respond: func(script string) (*process.Result, error) {
		if strings.Contains(script, "ConvertTo-Json") {
			return &process.Result{ExitCode: 1, Stderr: "ConvertTo-Json : not recognized"}, nil
		}
		return &process.Result{Stdout: "Microsoft.BingNews\r\nMicrosoft.WindowsCalculator\r\n"}, nil
	}}
	c := NewClient(shell, nil, nil)

	names, err := c.InstalledNames(context.Background())
	if err != nil {
		t.Fatalf("InstalledNames: %v", err)
	}
	if len(names) != 2 || names[0] != "Microsoft.BingNews" {
		t.Fatalf("names = %v", names)
	}
	if len(shell.scripts) != 2 {
		t.Fatalf("scripts = %v", shell.scripts)
	}
}

func TestRemoveAndVerify(t *testing.T) {
	shell := &fakeShell{respond: func(script string) (*process.Result, error) {
		return &process.Result{}, nil
	}}
	m := NewManager(NewClient(shell, nil, nil), nil)
	item := core.NewRemovalItem("News", CategoryMicrosoft, "Microsoft.BingNews", "")

	if _, err := m.Apply(context.Background(), item, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if shell.scripts[0] != "Get-AppxPackage '*Microsoft.BingNews*' | Remove-AppxPackage -ErrorAction Stop" {
		t.Fatalf("script = %q", shell.scripts[0])
	}
	if m.Succeeded(item, &process.Result{}) {
		t.Fatal("removal accepted without verification")
	}
	ok, err := m.Verify(context.Background(), item)
	if err != nil || !ok {
		t.Fatalf("Verify = %v, %v", ok, err)
	}
}

func TestVerifyRemovedStillPresent(t *testing.T) {
	shell := &fakeShell{respond: func(string) (*process.Result, error) {
		return &process.Result{Stdout: "Microsoft.BingNews\n"}, nil
	}}
	ok, err := NewClient(shell, nil, nil).VerifyRemoved(context.Background(), "BingNews")
	if err != nil || ok {
		t.Fatalf("VerifyRemoved = %v, %v; want false", ok, err)
	}
}

func TestRemoveRejectsWildcards(t *testing.T) {
	shell := &fakeShell{respond: func(string) (*process.Result, error) { return &process.Result{}, nil }}
	_, err := NewClient(shell, nil, nil).Remove(context.Background(), "*'; Remove-Item C:\\", nil)
	if !errors.Is(err, validate.ErrInvalidID) {
		t.Fatalf("err = %v", err)
	}
	if len(shell.scripts) != 0 {
		t.Fatal("shell invoked for invalid name")
	}
}
