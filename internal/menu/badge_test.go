// internal/menu/badge_test.go
package menu

import (
	"errors"
	"testing"

	"github.com/solatis/menukeeper/internal/types"
)

func TestBadge_StaticValue(t *testing.T) {
	b := NewBadge(42, types.BadgeSuccess)

	v, err := b.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v, want nil", err)
	}
	if v != 42 {
		t.Errorf("Evaluate() = %v, want 42", v)
	}
	if b.Style() != types.BadgeSuccess {
		t.Errorf("Style() = %q, want success", b.Style())
	}
}

func TestBadge_CallbackReceivesRequest(t *testing.T) {
	var seen *types.Request
	b := NewBadgeFunc(func(req *types.Request) (any, error) {
		seen = req
		return "new", nil
	}, types.BadgeInfo)

	req := &types.Request{Actor: &types.Actor{ID: "u1"}}
	v, err := b.Evaluate(req)
	if err != nil {
		t.Fatalf("Evaluate() error = %v, want nil", err)
	}
	if v != "new" {
		t.Errorf("Evaluate() = %v, want new", v)
	}
	if seen != req {
		t.Error("callback did not receive the request context")
	}
}

func TestBadge_CallbackToleratesNilRequest(t *testing.T) {
	b := NewBadgeFunc(func(req *types.Request) (any, error) {
		if req == nil {
			return "anonymous", nil
		}
		return "actor", nil
	}, types.BadgeInfo)

	v, err := b.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate(nil) error = %v, want nil", err)
	}
	if v != "anonymous" {
		t.Errorf("Evaluate(nil) = %v, want anonymous", v)
	}
}

func TestBadge_GuardSuppressesValue(t *testing.T) {
	b := NewBadge("7", types.BadgeWarning).withGuard(func(*types.Request) (bool, error) {
		return false, nil
	})

	v, err := b.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v, want nil", err)
	}
	if v != nil {
		t.Errorf("Evaluate() = %v with false guard, want nil", v)
	}
}

func TestBadge_CallbackErrorPropagates(t *testing.T) {
	boom := errors.New("query failed")
	b := NewBadgeFunc(func(*types.Request) (any, error) {
		return nil, boom
	}, types.BadgeDanger)

	_, err := b.Evaluate(nil)
	if !errors.Is(err, types.ErrBadgeEvaluation) {
		t.Errorf("Evaluate() error = %v, want ErrBadgeEvaluation", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Evaluate() error = %v, want wrapped original", err)
	}
}

func TestAuthorization_DefaultVisible(t *testing.T) {
	var a Authorization
	ok, err := a.Evaluate(nil)
	if err != nil {
		t.Fatalf("Evaluate() error = %v, want nil", err)
	}
	if !ok {
		t.Error("Evaluate() = false with no predicate, want true")
	}
}

func TestAuthorization_PredicateErrorPropagates(t *testing.T) {
	boom := errors.New("directory unreachable")
	a := NewAuthorization(func(*types.Request) (bool, error) {
		return false, boom
	})

	_, err := a.Evaluate(nil)
	if !errors.Is(err, types.ErrAuthEvaluation) {
		t.Errorf("Evaluate() error = %v, want ErrAuthEvaluation", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Evaluate() error = %v, want wrapped original", err)
	}
}

func TestAnyRole(t *testing.T) {
	tests := []struct {
		name string
		req  *types.Request
		want bool
	}{
		{
			name: "matching role",
			req:  &types.Request{Actor: &types.Actor{ID: "u1", Roles: []string{"editor", "admin"}}},
			want: true,
		},
		{
			name: "no matching role",
			req:  &types.Request{Actor: &types.Actor{ID: "u2", Roles: []string{"viewer"}}},
			want: false,
		},
		{
			name: "anonymous",
			req:  &types.Request{},
			want: false,
		},
		{
			name: "nil request",
			req:  nil,
			want: false,
		},
	}

	p := AnyRole("admin", "editor")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p(tt.req)
			if err != nil {
				t.Fatalf("predicate error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}
