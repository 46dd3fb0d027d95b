package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/refmatch/internal/identity"
	"github.com/DhavalSuthar-24/refmatch/internal/profile"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]profile.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]profile.UserProfile)}
}

func (f *fakeProfileRepo) CreateProfile(p *profile.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[p.SubjectID]; ok {
		return errors.New("duplicate key")
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	f.profiles[p.SubjectID] = *p
	return nil
}

func (f *fakeProfileRepo) GetProfileBySubject(subjectID string) (*profile.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[subjectID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	copied := p
	return &copied, nil
}

func (f *fakeProfileRepo) UpdateProfile(p *profile.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.UpdatedAt = time.Now().UTC()
	f.profiles[p.SubjectID] = *p
	return nil
}

func (f *fakeProfileRepo) SubjectByEmail(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if strings.EqualFold(p.Email, email) {
			return p.SubjectID, nil
		}
	}
	return "", nil
}

// claimFailGateway wraps a gateway and fails every claim write.
type claimFailGateway struct {
	identity.Gateway
}

func (g *claimFailGateway) SetClaims(ctx context.Context, subject string, claims map[string]interface{}) error {
	return errors.New("claims endpoint down")
}

func newRegisterRouter(repo profile.ProfileRepository, gateway identity.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewAuthController(repo, gateway)
	r.POST("/register", controller.Register)
	return r
}

func doRegister(t *testing.T, router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestRegisterRolePairings(t *testing.T) {
	tests := []struct {
		role       string
		wantStatus profile.AccessStatus
		wantSeats  *int
	}{
		{role: "Referee", wantStatus: profile.StatusActive, wantSeats: nil},
		{role: "coach", wantStatus: profile.StatusPaymentPending, wantSeats: nil},
		{role: "CLUB", wantStatus: profile.StatusPaymentPending, wantSeats: intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			repo := newFakeProfileRepo()
			gateway := identity.NewLocalGateway("test-secret", repo)
			router := newRegisterRouter(repo, gateway)

			token, err := gateway.IssueToken("subject-"+tt.role, strings.ToLower(tt.role)+"@example.com", true, time.Minute)
			if err != nil {
				t.Fatalf("IssueToken failed: %v", err)
			}

			resp := doRegister(t, router, map[string]interface{}{
				"id_token": token,
				"role":     tt.role,
				"name":     "Test User",
			})
			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
			}

			p, err := repo.GetProfileBySubject("subject-" + tt.role)
			if err != nil {
				t.Fatalf("profile not persisted: %v", err)
			}
			if p.AccessStatus != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, p.AccessStatus)
			}
			if tt.wantSeats == nil {
				if p.MaxSeats != nil {
					t.Fatalf("expected nil max seats, got %d", *p.MaxSeats)
				}
			} else {
				if p.MaxSeats == nil || *p.MaxSeats != *tt.wantSeats {
					t.Fatalf("expected max seats %d, got %v", *tt.wantSeats, p.MaxSeats)
				}
			}
			if p.SubscriptionActive {
				t.Fatalf("expected subscription inactive at registration")
			}

			claims := gateway.Claims("subject-" + tt.role)
			if claims == nil {
				t.Fatalf("expected custom claims to be written")
			}
			if claims["status"] != string(tt.wantStatus) {
				t.Fatalf("expected status claim %q, got %v", tt.wantStatus, claims["status"])
			}
			if claims["role"] != string(p.Role) {
				t.Fatalf("expected role claim %q, got %v", p.Role, claims["role"])
			}
		})
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	repo := newFakeProfileRepo()
	gateway := identity.NewLocalGateway("test-secret", repo)
	router := newRegisterRouter(repo, gateway)

	token, err := gateway.IssueToken("subject-1", "user@example.com", true, time.Minute)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	resp := doRegister(t, router, map[string]interface{}{
		"id_token": token,
		"role":     "league",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if _, err := repo.GetProfileBySubject("subject-1"); !errors.Is(err, profile.ErrProfileNotFound) {
		t.Fatalf("expected no profile, got err=%v", err)
	}
}

func TestRegisterInvalidToken(t *testing.T) {
	repo := newFakeProfileRepo()
	gateway := identity.NewLocalGateway("test-secret", repo)
	router := newRegisterRouter(repo, gateway)

	resp := doRegister(t, router, map[string]interface{}{
		"id_token": "garbage",
		"role":     "referee",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRegisterTwiceFails(t *testing.T) {
	repo := newFakeProfileRepo()
	gateway := identity.NewLocalGateway("test-secret", repo)
	router := newRegisterRouter(repo, gateway)

	token, err := gateway.IssueToken("subject-1", "ref@example.com", true, time.Minute)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	first := doRegister(t, router, map[string]interface{}{
		"id_token": token, "role": "referee", "name": "First Name",
	})
	if first.Code != http.StatusOK {
		t.Fatalf("first register: expected 200, got %d", first.Code)
	}

	second := doRegister(t, router, map[string]interface{}{
		"id_token": token, "role": "club", "name": "Second Name",
	})
	if second.Code != http.StatusBadRequest {
		t.Fatalf("second register: expected 400, got %d", second.Code)
	}

	p, err := repo.GetProfileBySubject("subject-1")
	if err != nil {
		t.Fatalf("profile missing: %v", err)
	}
	if p.Role != profile.RoleReferee || p.Name != "First Name" {
		t.Fatalf("profile changed by duplicate register: role=%s name=%s", p.Role, p.Name)
	}
}

func TestRegisterSucceedsWhenClaimSyncFails(t *testing.T) {
	repo := newFakeProfileRepo()
	local := identity.NewLocalGateway("test-secret", repo)
	router := newRegisterRouter(repo, &claimFailGateway{Gateway: local})

	token, err := local.IssueToken("subject-1", "club@example.com", true, time.Minute)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	resp := doRegister(t, router, map[string]interface{}{
		"id_token": token, "role": "club",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 despite claim failure, got %d: %s", resp.Code, resp.Body.String())
	}
	if _, err := repo.GetProfileBySubject("subject-1"); err != nil {
		t.Fatalf("profile should be persisted: %v", err)
	}
}

func intPtr(v int) *int {
	return &v
}
