package service

import (
	"context"
	"sort"
	"time"

	"prizedraw-api/internal/domain"
	"prizedraw-api/internal/payment"
	"prizedraw-api/internal/repository"
)

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint]domain.User),
		nextID: 1,
	}
}

func (f *fakeUserRepo) add(user domain.User) domain.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	} else if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = user

	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
		if existing.Username == user.Username {
			return domain.User{}, repository.ErrUserUsernameExists
		}
	}

	return f.add(user), nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user domain.User) (domain.User, error) {
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) UpdateFlags(_ context.Context, id uint, isAdmin, isPremium bool) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.IsAdmin = isAdmin
	user.IsPremium = isPremium
	f.users[id] = user

	return nil
}

func (f *fakeUserRepo) CreditWallet(_ context.Context, id uint, amount int64) error {
	user, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.WalletBalance += amount
	f.users[id] = user

	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	ids := make([]int, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, f.users[uint(id)])
	}

	return users, nil
}

type fakeCompetitionRepo struct {
	competitions map[uint]domain.Competition
	nextID       uint
}

func newFakeCompetitionRepo() *fakeCompetitionRepo {
	return &fakeCompetitionRepo{
		competitions: make(map[uint]domain.Competition),
		nextID:       1,
	}
}

func (f *fakeCompetitionRepo) add(competition domain.Competition) domain.Competition {
	if competition.ID == 0 {
		competition.ID = f.nextID
		f.nextID++
	} else if competition.ID >= f.nextID {
		f.nextID = competition.ID + 1
	}
	f.competitions[competition.ID] = competition

	return competition
}

func (f *fakeCompetitionRepo) Create(_ context.Context, competition domain.Competition) (domain.Competition, error) {
	return f.add(competition), nil
}

func (f *fakeCompetitionRepo) Update(_ context.Context, competition domain.Competition) (domain.Competition, error) {
	f.competitions[competition.ID] = competition

	return competition, nil
}

func (f *fakeCompetitionRepo) FindByID(_ context.Context, id uint) (domain.Competition, error) {
	competition, ok := f.competitions[id]
	if !ok {
		return domain.Competition{}, repository.ErrCompetitionNotFound
	}

	return competition, nil
}

func (f *fakeCompetitionRepo) FindBySlug(_ context.Context, slug string) (domain.Competition, error) {
	for _, competition := range f.competitions {
		if competition.Slug == slug {
			return competition, nil
		}
	}

	return domain.Competition{}, repository.ErrCompetitionNotFound
}

func (f *fakeCompetitionRepo) ListOpen(_ context.Context) ([]domain.Competition, error) {
	return f.listWhere(func(c domain.Competition) bool {
		return c.Status == domain.CompetitionOpen
	}), nil
}

func (f *fakeCompetitionRepo) ListEnded(_ context.Context, now time.Time) ([]domain.Competition, error) {
	return f.listWhere(func(c domain.Competition) bool {
		return c.Status == domain.CompetitionOpen && c.Ended(now)
	}), nil
}

func (f *fakeCompetitionRepo) ListDrawDue(_ context.Context, now time.Time) ([]domain.Competition, error) {
	return f.listWhere(func(c domain.Competition) bool {
		return c.DrawDue(now)
	}), nil
}

func (f *fakeCompetitionRepo) UpdateStatus(_ context.Context, id uint, status domain.CompetitionStatus) error {
	competition, ok := f.competitions[id]
	if !ok {
		return repository.ErrCompetitionNotFound
	}
	competition.Status = status
	f.competitions[id] = competition

	return nil
}

func (f *fakeCompetitionRepo) listWhere(keep func(domain.Competition) bool) []domain.Competition {
	ids := make([]int, 0, len(f.competitions))
	for id := range f.competitions {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var out []domain.Competition
	for _, id := range ids {
		if competition := f.competitions[uint(id)]; keep(competition) {
			out = append(out, competition)
		}
	}

	return out
}

type fakeEntryRepo struct {
	entries map[uint]domain.Entry
	nextID  uint
	comps   *fakeCompetitionRepo
}

func newFakeEntryRepo(comps *fakeCompetitionRepo) *fakeEntryRepo {
	return &fakeEntryRepo{
		entries: make(map[uint]domain.Entry),
		nextID:  1,
		comps:   comps,
	}
}

func (f *fakeEntryRepo) add(entry domain.Entry) domain.Entry {
	if entry.ID == 0 {
		entry.ID = f.nextID
		f.nextID++
	} else if entry.ID >= f.nextID {
		f.nextID = entry.ID + 1
	}
	f.entries[entry.ID] = entry

	return entry
}

func (f *fakeEntryRepo) CreateWithTicket(_ context.Context, entry domain.Entry) (domain.Entry, error) {
	competition, ok := f.comps.competitions[entry.CompetitionID]
	if !ok {
		return domain.Entry{}, repository.ErrCompetitionNotFound
	}
	if competition.Status != domain.CompetitionOpen {
		return domain.Entry{}, repository.ErrCompetitionClosed
	}
	if competition.SoldOut() {
		return domain.Entry{}, repository.ErrCompetitionSoldOut
	}

	if len(entry.Progress) == 0 {
		entry.Progress = make([]bool, competition.Steps)
	}
	competition.SoldTickets++
	f.comps.competitions[competition.ID] = competition

	return f.add(entry), nil
}

func (f *fakeEntryRepo) FindByID(_ context.Context, id uint) (domain.Entry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return domain.Entry{}, repository.ErrEntryNotFound
	}

	return entry, nil
}

func (f *fakeEntryRepo) Update(_ context.Context, entry domain.Entry) (domain.Entry, error) {
	f.entries[entry.ID] = entry

	return entry, nil
}

func (f *fakeEntryRepo) ListByUser(_ context.Context, userID uint) ([]domain.Entry, error) {
	return f.listWhere(func(e domain.Entry) bool { return e.UserID == userID }), nil
}

func (f *fakeEntryRepo) ListByCompetition(_ context.Context, competitionID uint) ([]domain.Entry, error) {
	return f.listWhere(func(e domain.Entry) bool { return e.CompetitionID == competitionID }), nil
}

func (f *fakeEntryRepo) CountByUser(_ context.Context, userID uint) (int, error) {
	return len(f.listWhere(func(e domain.Entry) bool { return e.UserID == userID })), nil
}

func (f *fakeEntryRepo) listWhere(keep func(domain.Entry) bool) []domain.Entry {
	ids := make([]int, 0, len(f.entries))
	for id := range f.entries {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	var out []domain.Entry
	for _, id := range ids {
		if entry := f.entries[uint(id)]; keep(entry) {
			out = append(out, entry)
		}
	}

	return out
}

type fakeWinRepo struct {
	wins   []domain.Win
	nextID uint
}

func newFakeWinRepo() *fakeWinRepo {
	return &fakeWinRepo{nextID: 1}
}

func (f *fakeWinRepo) Create(_ context.Context, win domain.Win) (domain.Win, error) {
	win.ID = f.nextID
	f.nextID++
	f.wins = append(f.wins, win)

	return win, nil
}

func (f *fakeWinRepo) ListByUser(_ context.Context, userID uint) ([]domain.Win, error) {
	var out []domain.Win
	for _, win := range f.wins {
		if win.UserID == userID {
			out = append(out, win)
		}
	}
	// Newest first, matching the storage query.
	sort.Slice(out, func(i, j int) bool { return out[i].DrawnAt.After(out[j].DrawnAt) })

	return out, nil
}

func (f *fakeWinRepo) CountByUser(_ context.Context, userID uint) (int, error) {
	wins, _ := f.ListByUser(context.Background(), userID)

	return len(wins), nil
}

type fakePaymentRepo struct {
	payments map[string]domain.Payment
	nextID   uint
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[string]domain.Payment),
		nextID:   1,
	}
}

func (f *fakePaymentRepo) Create(_ context.Context, p domain.Payment) (domain.Payment, error) {
	p.ID = f.nextID
	f.nextID++
	f.payments[p.AttemptID] = p

	return p, nil
}

func (f *fakePaymentRepo) FindByAttemptID(_ context.Context, attemptID string) (domain.Payment, error) {
	p, ok := f.payments[attemptID]
	if !ok {
		return domain.Payment{}, repository.ErrPaymentNotFound
	}

	return p, nil
}

func (f *fakePaymentRepo) Transition(_ context.Context, attemptID string, from, to domain.PaymentStatus) error {
	p, ok := f.payments[attemptID]
	if !ok || p.Status != from {
		return repository.ErrPaymentStateConflict
	}
	p.Status = to
	f.payments[attemptID] = p

	return nil
}

func (f *fakePaymentRepo) Update(_ context.Context, p domain.Payment) (domain.Payment, error) {
	f.payments[p.AttemptID] = p

	return p, nil
}

type fakeProvider struct {
	createIntent  payment.Intent
	createErr     error
	confirmIntent payment.Intent
	confirmErr    error
	createCalls   int
	confirmCalls  int
}

func (f *fakeProvider) CreateIntent(_ context.Context, _ payment.IntentRequest) (payment.Intent, error) {
	f.createCalls++
	if f.createErr != nil {
		return payment.Intent{}, f.createErr
	}

	return f.createIntent, nil
}

func (f *fakeProvider) ConfirmIntent(_ context.Context, _ string) (payment.Intent, error) {
	f.confirmCalls++
	if f.confirmErr != nil {
		return payment.Intent{}, f.confirmErr
	}

	return f.confirmIntent, nil
}

type fakeAnnouncer struct {
	announcements []string
}

func (f *fakeAnnouncer) AnnounceWin(_ domain.Win, _ domain.Competition, username string) {
	f.announcements = append(f.announcements, username)
}
