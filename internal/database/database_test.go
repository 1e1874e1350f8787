package database_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thereayou/taskboard/internal/database"
	"github.com/thereayou/taskboard/internal/models"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return database.NewDatabase(db)
}

func mustCreateUser(t *testing.T, db *database.Database, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		LastName:     "User",
	}
	if err := db.SaveUser(user); err != nil {
		t.Fatalf("Failed to create user %q: %v", username, err)
	}
	return user
}

func mustCreateTodo(t *testing.T, db *database.Database, owner *models.User, title string) *models.Todo {
	t.Helper()

	todo := &models.Todo{UserID: owner.ID, Title: title}
	if err := db.SaveTodo(todo); err != nil {
		t.Fatalf("Failed to create todo %q: %v", title, err)
	}
	return todo
}

func TestSaveUser_DuplicateUsername(t *testing.T) {
	db := newTestDB(t)

	mustCreateUser(t, db, "alice")

	dup := &models.User{
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "hash",
	}
	if err := db.SaveUser(dup); err == nil {
		t.Fatal("SaveUser() accepted a duplicate username")
	}

	users, err := db.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("ListUsers() returned %d users, want 1", len(users))
	}
}

func TestSaveUser_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	mustCreateUser(t, db, "alice")

	dup := &models.User{
		Username:     "bob",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	}
	if err := db.SaveUser(dup); err == nil {
		t.Fatal("SaveUser() accepted a duplicate email")
	}
}

func TestSaveReaction_UniquePerUserAndTodo(t *testing.T) {
	db := newTestDB(t)

	alice := mustCreateUser(t, db, "alice")
	todo := mustCreateTodo(t, db, alice, "write tests")

	if err := db.SaveReaction(&models.TodoReaction{UserID: alice.ID, TodoID: todo.ID}); err != nil {
		t.Fatalf("SaveReaction() error = %v", err)
	}
	if err := db.SaveReaction(&models.TodoReaction{UserID: alice.ID, TodoID: todo.ID}); err == nil {
		t.Fatal("SaveReaction() accepted a second reaction for the same user and todo")
	}

	count, err := db.CountTodoReactions(todo.ID.String())
	if err != nil {
		t.Fatalf("CountTodoReactions() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountTodoReactions() = %d, want 1", count)
	}
}

func TestCompleteTodo(t *testing.T) {
	db := newTestDB(t)

	alice := mustCreateUser(t, db, "alice")
	todo := mustCreateTodo(t, db, alice, "ship it")

	if err := db.CompleteTodo(todo, time.Now()); err != nil {
		t.Fatalf("CompleteTodo() error = %v", err)
	}

	got, err := db.GetTodo(todo.ID.String())
	if err != nil {
		t.Fatalf("GetTodo() error = %v", err)
	}
	if !got.Completed {
		t.Error("Completed = false after CompleteTodo()")
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt is nil after CompleteTodo()")
	}
}

func TestDeleteTodo_CascadesReactions(t *testing.T) {
	db := newTestDB(t)

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	todo := mustCreateTodo(t, db, alice, "review PR")

	if err := db.SaveReaction(&models.TodoReaction{UserID: bob.ID, TodoID: todo.ID}); err != nil {
		t.Fatalf("SaveReaction() error = %v", err)
	}

	if err := db.DeleteTodo(todo.ID.String()); err != nil {
		t.Fatalf("DeleteTodo() error = %v", err)
	}

	if _, err := db.GetTodo(todo.ID.String()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("GetTodo() after delete error = %v, want ErrRecordNotFound", err)
	}

	count, err := db.CountTodoReactions(todo.ID.String())
	if err != nil {
		t.Fatalf("CountTodoReactions() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountTodoReactions() = %d after delete, want 0", count)
	}
}

func TestFollowUnfollow_RoundTrip(t *testing.T) {
	db := newTestDB(t)

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")

	if err := db.Follow(alice.ID.String(), bob.ID.String()); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}

	following, err := db.IsFollowing(alice.ID.String(), bob.ID.String())
	if err != nil {
		t.Fatalf("IsFollowing() error = %v", err)
	}
	if !following {
		t.Error("IsFollowing() = false after Follow()")
	}

	// Направленное ребро: обратной подписки нет
	reverse, err := db.IsFollowing(bob.ID.String(), alice.ID.String())
	if err != nil {
		t.Fatalf("IsFollowing() error = %v", err)
	}
	if reverse {
		t.Error("IsFollowing() = true for the reverse direction")
	}

	if err := db.Unfollow(alice.ID.String(), bob.ID.String()); err != nil {
		t.Fatalf("Unfollow() error = %v", err)
	}

	following, err = db.IsFollowing(alice.ID.String(), bob.ID.String())
	if err != nil {
		t.Fatalf("IsFollowing() error = %v", err)
	}
	if following {
		t.Error("IsFollowing() = true after Unfollow()")
	}

	list, err := db.ListFollowing(alice.ID.String())
	if err != nil {
		t.Fatalf("ListFollowing() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListFollowing() returned %d users after unfollow, want 0", len(list))
	}
}

func TestTimeline_AppendOnly(t *testing.T) {
	db := newTestDB(t)

	alice := mustCreateUser(t, db, "alice")

	if err := db.AddTimelineEntry(alice.ID, "Created a new task write tests"); err != nil {
		t.Fatalf("AddTimelineEntry() error = %v", err)
	}
	if err := db.AddTimelineEntry(alice.ID, "Completed task write tests"); err != nil {
		t.Fatalf("AddTimelineEntry() error = %v", err)
	}

	entries, err := db.ListTimeline(alice.ID.String())
	if err != nil {
		t.Fatalf("ListTimeline() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListTimeline() returned %d entries, want 2", len(entries))
	}
}

func TestListOpenTodos_ExcludesCompleted(t *testing.T) {
	db := newTestDB(t)

	alice := mustCreateUser(t, db, "alice")
	open := mustCreateTodo(t, db, alice, "still open")
	done := mustCreateTodo(t, db, alice, "already done")

	if err := db.CompleteTodo(done, time.Now()); err != nil {
		t.Fatalf("CompleteTodo() error = %v", err)
	}

	todos, err := db.ListOpenTodos()
	if err != nil {
		t.Fatalf("ListOpenTodos() error = %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("ListOpenTodos() returned %d todos, want 1", len(todos))
	}
	if todos[0].ID != open.ID {
		t.Errorf("ListOpenTodos() returned todo %s, want %s", todos[0].ID, open.ID)
	}
}
