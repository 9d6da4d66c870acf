package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/psouza/gerador-provas/internal/apperror"
	"github.com/psouza/gerador-provas/internal/auth"
	"github.com/psouza/gerador-provas/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPasswords() *auth.PasswordService {
	return auth.NewPasswordServiceForTest(bcrypt.MinCost)
}

// mockUserRepo is an in-memory UserRepository. Tests pre-seed users
// and inspect writes directly.
type mockUserRepo struct {
	users   map[int64]*model.User
	nextID  int64
	creates int
	updates int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (m *mockUserRepo) seed(u model.User) *model.User {
	if u.ID == 0 {
		u.ID = m.nextID
	}
	if u.ID >= m.nextID {
		m.nextID = u.ID + 1
	}
	cp := u
	m.users[cp.ID] = &cp
	return &cp
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	m.users[cp.ID] = &cp
	m.creates++
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("usuário", id)
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, &apperror.AppError{
		Err:     apperror.ErrNotFound,
		Code:    apperror.CodeNotFound,
		Message: "usuário não encontrado",
	}
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("usuário", user.ID)
	}
	cp := *user
	m.users[cp.ID] = &cp
	m.updates++
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("usuário", id)
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

// mockSubjectRepo is an in-memory SubjectRepository.
type mockSubjectRepo struct {
	subjects map[int64]*model.Subject
	nextID   int64
	creates  int
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[int64]*model.Subject), nextID: 1}
}

func (m *mockSubjectRepo) seed(s model.Subject) *model.Subject {
	if s.ID == 0 {
		s.ID = m.nextID
	}
	if s.ID >= m.nextID {
		m.nextID = s.ID + 1
	}
	cp := s
	m.subjects[cp.ID] = &cp
	return &cp
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	subject.ID = m.nextID
	m.nextID++
	now := time.Now()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	cp := *subject
	m.subjects[cp.ID] = &cp
	m.creates++
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id int64) (*model.Subject, error) {
	s, ok := m.subjects[id]
	if !ok {
		return nil, apperror.NotFound("disciplina", id)
	}
	cp := *s
	return &cp, nil
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	out := make([]model.Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	if _, ok := m.subjects[subject.ID]; !ok {
		return apperror.NotFound("disciplina", subject.ID)
	}
	cp := *subject
	m.subjects[cp.ID] = &cp
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.subjects[id]; !ok {
		return apperror.NotFound("disciplina", id)
	}
	delete(m.subjects, id)
	return nil
}

func (m *mockSubjectRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.subjects[id]
	return ok, nil
}

func (m *mockSubjectRepo) NomeInUse(_ context.Context, nome string, excludeID int64) (bool, error) {
	for _, s := range m.subjects {
		if s.Nome == nome && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// mockQuestionRepo is an in-memory QuestionRepository.
type mockQuestionRepo struct {
	questions map[int64]*model.Question
	nextID    int64
	creates   int
}

func newMockQuestionRepo() *mockQuestionRepo {
	return &mockQuestionRepo{questions: make(map[int64]*model.Question), nextID: 1}
}

func (m *mockQuestionRepo) Create(_ context.Context, question *model.Question) error {
	question.ID = m.nextID
	m.nextID++
	now := time.Now()
	question.CreatedAt = now
	question.UpdatedAt = now
	cp := *question
	m.questions[cp.ID] = &cp
	m.creates++
	return nil
}

func (m *mockQuestionRepo) GetByID(_ context.Context, id int64) (*model.Question, error) {
	q, ok := m.questions[id]
	if !ok {
		return nil, apperror.NotFound("questão", id)
	}
	cp := *q
	return &cp, nil
}

func (m *mockQuestionRepo) List(_ context.Context) ([]model.Question, error) {
	out := make([]model.Question, 0, len(m.questions))
	for _, q := range m.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (m *mockQuestionRepo) Update(_ context.Context, question *model.Question) error {
	if _, ok := m.questions[question.ID]; !ok {
		return apperror.NotFound("questão", question.ID)
	}
	cp := *question
	m.questions[cp.ID] = &cp
	return nil
}

func (m *mockQuestionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.questions[id]; !ok {
		return apperror.NotFound("questão", id)
	}
	delete(m.questions, id)
	return nil
}

// seedProfessor creates a minimal stored professor for FK checks.
func seedProfessor(t *testing.T, repo *mockUserRepo, id int64) *model.User {
	t.Helper()
	nome := "Professor Teste"
	return repo.seed(model.User{
		ID:    id,
		Nome:  &nome,
		Email: "prof@example.com",
		Papel: model.RoleProfessor,
	})
}
