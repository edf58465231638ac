package bot

import (
	"context"
	"errors"
	"testing"

	"flowrelay/pkg/api"
	"flowrelay/pkg/models"
)

// fakeDriverAPI records status-update calls and fails on demand.
type fakeDriverAPI struct {
	api.IDriverAPI

	statusCalls []models.Availability
	statusErr   error
}

func (f *fakeDriverAPI) UpdateStatus(_ context.Context, status models.Availability) error {
	f.statusCalls = append(f.statusCalls, status)
	return f.statusErr
}

func TestProfileViewOf(t *testing.T) {
	notFound := &api.Error{Status: 404, Message: "Driver profile not found"}

	cases := []struct {
		name    string
		profile *models.DriverProfile
		err     error
		want    profileView
		wantErr bool
	}{
		{"missing profile", nil, notFound, profileMissing, false},
		{"transport failure", nil, errors.New("boom"), 0, true},
		{"pending", &models.DriverProfile{DriverStatus: models.StatusPending}, nil, profilePending, false},
		{"empty status reads pending", &models.DriverProfile{}, nil, profilePending, false},
		{"approved", &models.DriverProfile{DriverStatus: models.StatusApproved}, nil, profileApproved, false},
		{"rejected", &models.DriverProfile{DriverStatus: models.StatusRejected}, nil, profileRejected, false},
		{"suspended", &models.DriverProfile{DriverStatus: models.StatusSuspended}, nil, profileSuspended, false},
		{"unknown status", &models.DriverProfile{DriverStatus: "frozen"}, nil, profileUnknown, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := profileViewOf(tc.profile, tc.err)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("view = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestToggleTarget(t *testing.T) {
	if target, ok := toggleTarget(models.AvailabilityOffline); !ok || target != models.AvailabilityAvailable {
		t.Fatalf("offline toggles to %q (%v), want available", target, ok)
	}
	if target, ok := toggleTarget(models.AvailabilityAvailable); !ok || target != models.AvailabilityOffline {
		t.Fatalf("available toggles to %q (%v), want offline", target, ok)
	}
	if _, ok := toggleTarget(models.AvailabilityBusy); ok {
		t.Fatal("busy must not be toggleable")
	}
}

func TestApplyToggleMakesExactlyOneCall(t *testing.T) {
	cli := &fakeDriverAPI{}

	now, err := applyToggle(context.Background(), cli, models.AvailabilityOffline, models.AvailabilityAvailable)
	if err != nil {
		t.Fatal(err)
	}
	if now != models.AvailabilityAvailable {
		t.Fatalf("shown status = %q, want available", now)
	}
	if len(cli.statusCalls) != 1 || cli.statusCalls[0] != models.AvailabilityAvailable {
		t.Fatalf("status calls = %v, want exactly one with available", cli.statusCalls)
	}
}

func TestApplyToggleFailureKeepsShownStatus(t *testing.T) {
	cli := &fakeDriverAPI{statusErr: errors.New("backend down")}

	now, err := applyToggle(context.Background(), cli, models.AvailabilityOffline, models.AvailabilityAvailable)
	if err == nil {
		t.Fatal("expected the failure to surface")
	}
	if now != models.AvailabilityOffline {
		t.Fatalf("shown status = %q after failure, want the unchanged offline", now)
	}
	if len(cli.statusCalls) != 1 {
		t.Fatalf("made %d calls, want one attempt and no retry", len(cli.statusCalls))
	}
}
