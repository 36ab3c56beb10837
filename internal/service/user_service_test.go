package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"calldesk/internal/apperr"
	"calldesk/internal/models"
	"calldesk/internal/repository/memory"
	"calldesk/internal/visibility"
)

func newUserService() *UserService {
	table := visibility.NewTable(6, map[string]int{"Regular": 2, "Starter": 1})
	return &UserService{
		Repo:       memory.New(),
		Visibility: &table,
		Now:        func() time.Time { return fixedNow },
	}
}

func intPtr(v int) *int { return &v }

func TestCreateUser(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	u, err := svc.CreateUser(ctx, CreateUserInput{Mobile: "9000000001", AccessDays: 30, PlanTier: models.PlanTierRegular})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	sub := u.Subscription
	if !sub.IsActive || sub.IsUnlimited || sub.Plan != models.PlanCustom {
		t.Fatalf("subscription=%+v", sub)
	}
	if want := fixedNow.AddDate(0, 0, 30); sub.EndDate == nil || !sub.EndDate.Equal(want) {
		t.Fatalf("endDate=%v want %v", sub.EndDate, want)
	}

	_, err = svc.CreateUser(ctx, CreateUserInput{Mobile: "9000000001"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err=%v want conflict", err)
	}
	if _, err := svc.CreateUser(ctx, CreateUserInput{Mobile: "9000000002", PlanTier: "Gold"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v want validation", err)
	}
	if _, err := svc.CreateUser(ctx, CreateUserInput{Mobile: "9000000003", PlanTier: "Starter"}); err != nil {
		t.Fatalf("configured tier rejected: %v", err)
	}
}

func TestUpdateUserExtendsSubscription(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	u, _ := svc.CreateUser(ctx, CreateUserInput{Mobile: "9000000001", AccessDays: 10})
	start := *u.Subscription.StartDate

	got, err := svc.UpdateUser(ctx, u.ID, UpdateUserInput{AccessDays: intPtr(5), ExtendSubscription: true})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if want := fixedNow.AddDate(0, 0, 15); !got.Subscription.EndDate.Equal(want) {
		t.Fatalf("endDate=%v want %v", got.Subscription.EndDate, want)
	}
	if !got.Subscription.StartDate.Equal(start) {
		t.Fatalf("startDate moved")
	}

	got, _ = svc.UpdateUser(ctx, u.ID, UpdateUserInput{AccessDays: intPtr(3)})
	if want := fixedNow.AddDate(0, 0, 3); !got.Subscription.EndDate.Equal(want) {
		t.Fatalf("replace endDate=%v want %v", got.Subscription.EndDate, want)
	}

	unlimited := true
	got, _ = svc.UpdateUser(ctx, u.ID, UpdateUserInput{IsUnlimited: &unlimited, MaxTargetsVisible: intPtr(4)})
	if !got.Subscription.IsUnlimited || got.Subscription.EndDate != nil {
		t.Fatalf("subscription=%+v", got.Subscription)
	}
	if got.Tier().MaxTargetsVisible == nil || *got.Tier().MaxTargetsVisible != 4 {
		t.Fatalf("override not stored")
	}
}

func TestUpdateUserMobileConflict(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	a, _ := svc.CreateUser(ctx, CreateUserInput{Mobile: "9000000001"})
	_, _ = svc.CreateUser(ctx, CreateUserInput{Mobile: "9000000002"})
	taken := "9000000002"
	if _, err := svc.UpdateUser(ctx, a.ID, UpdateUserInput{Mobile: &taken}); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("err=%v want conflict", err)
	}
	same := "9000000001"
	if _, err := svc.UpdateUser(ctx, a.ID, UpdateUserInput{Mobile: &same}); err != nil {
		t.Fatalf("own mobile err=%v", err)
	}
}

func TestSubscriberTier(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	active, _ := svc.CreateUser(ctx, CreateUserInput{Mobile: "1", AccessDays: 1, PlanTier: models.PlanTierRegular})
	expired, _ := svc.CreateUser(ctx, CreateUserInput{Mobile: "2"})

	tier, err := svc.SubscriberTier(ctx, active.ID)
	if err != nil || tier.PlanTier != models.PlanTierRegular {
		t.Fatalf("tier=%+v err=%v", tier, err)
	}
	if _, err := svc.SubscriberTier(ctx, expired.ID); !errors.Is(err, ErrSubscriptionInactive) {
		t.Fatalf("err=%v want inactive", err)
	}
	if _, err := svc.SetUserActive(ctx, active.ID, false); err != nil {
		t.Fatalf("err=%v", err)
	}
	if _, err := svc.SubscriberTier(ctx, active.ID); !errors.Is(err, ErrSubscriptionInactive) {
		t.Fatalf("disabled user err=%v", err)
	}
}

func TestActivateSubscriptionAndDelete(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()
	u, _ := svc.CreateUser(ctx, CreateUserInput{Mobile: "1"})
	got, err := svc.ActivateSubscription(ctx, u.ID, "weekly")
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if got.Subscription.Plan != PlanWeekly || !got.Subscription.EndDate.Equal(fixedNow.AddDate(0, 0, 7)) {
		t.Fatalf("subscription=%+v", got.Subscription)
	}
	if _, err := svc.ActivateSubscription(ctx, u.ID, "yearly"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err=%v want validation", err)
	}
	if err := svc.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("err=%v", err)
	}
	if _, err := svc.GetUser(ctx, u.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("err=%v want not found", err)
	}
}
