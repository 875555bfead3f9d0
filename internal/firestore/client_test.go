package firestore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DalPra0/MetodoCanvas/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{ProjectID: "test-project", APIKey: "key", BaseURL: srv.URL}, nil)
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresProject(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	require.ErrorIs(t, err, ErrMissingProject)
}

func TestSaveTask(t *testing.T) {
	var gotPath string
	var gotDoc document
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotDoc))
		w.Write([]byte(`{}`))
	})

	task := model.Task{
		ID:              "t1",
		Title:           "Essay",
		Description:     "d",
		DueDate:         time.Now().UTC(),
		Course:          "History",
		Priority:        model.PriorityMedium,
		EstimatedEffort: time.Hour,
		CreatedAt:       time.Now().UTC(),
	}
	require.NoError(t, client.SaveTask(context.Background(), task))

	assert.Equal(t, "/projects/test-project/databases/(default)/documents/tasks", gotPath)
	title, ok := gotDoc.Fields["title"].asString()
	require.True(t, ok)
	assert.Equal(t, "Essay", title)
}

func TestSaveTask_RequestFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := client.SaveTask(context.Background(), model.Task{ID: "t1", Title: "Essay"})
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestFetchTasks_DropsUndecodableDocuments(t *testing.T) {
	good := taskToDocument(model.Task{
		ID:              "t1",
		Title:           "Essay",
		Description:     "d",
		DueDate:         time.Now().UTC(),
		Course:          "History",
		Priority:        model.PriorityLow,
		EstimatedEffort: time.Hour,
		CreatedAt:       time.Now().UTC(),
	})
	bad := document{Fields: map[string]value{"title": stringValue("no other fields")}}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		require.NoError(t, json.NewEncoder(w).Encode(documentList{Documents: []document{good, bad}}))
	})

	tasks, err := client.FetchTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Essay", tasks[0].Title)
}

func TestFetchTasks_EmptyCollection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	tasks, err := client.FetchTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestFetchTasks_RequestFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchTasks(context.Background())
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestFetchCourses(t *testing.T) {
	doc := courseToDocument(model.Course{ID: "c1", Name: "History", Code: "HIS1", Instructor: "I", ColorHex: "#fff"})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/test-project/databases/(default)/documents/courses", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(documentList{Documents: []document{doc}}))
	})

	courses, err := client.FetchCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "History", courses[0].Name)
}
