package tui

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tinytelemetry/pantry/internal/ingredient"
	"github.com/tinytelemetry/pantry/internal/model"
	"github.com/tinytelemetry/pantry/internal/request"
	"github.com/tinytelemetry/pantry/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoadsFullList(t *testing.T) {
	backend := &fakeBackend{respond: func(r *http.Request) (int, string) {
		return http.StatusOK, `{"b":{"title":"Salt","amount":1},"a":{"title":"Apple","amount":2}}`
	}}
	p := newTestPage(t, backend, search.ModeGuard, false)

	run(t, p, p.Init())

	gets := backend.callsWith(http.MethodGet)
	require.Len(t, gets, 1)
	assert.Equal(t, "http://backend.test/ingredients.json", gets[0].URL.String())
	assert.Equal(t, []model.Ingredient{
		{ID: "a", Title: "Apple", Amount: 2},
		{ID: "b", Title: "Salt", Amount: 1},
	}, p.Ingredients())
	assert.Equal(t, request.StatusSucceeded, p.searchReq.State().Status)
}

func TestAddAppendsCreatedRecord(t *testing.T) {
	backend := &fakeBackend{respond: func(r *http.Request) (int, string) {
		return http.StatusOK, `{"name":"abc123"}`
	}}
	p := newTestPage(t, backend, search.ModeGuard, false)

	p.setFocus(focusTitle)
	p.titleInput.SetValue("Apple")
	p.amountInput.SetValue("2")
	run(t, p, press(p, "enter"))

	posts := backend.callsWith(http.MethodPost)
	require.Len(t, posts, 1)
	assert.JSONEq(t, `{"title":"Apple","amount":2}`, backend.bodies[0])
	assert.Equal(t, []model.Ingredient{{ID: "abc123", Title: "Apple", Amount: 2}}, p.Ingredients())
	assert.Empty(t, p.formError)
	assert.Empty(t, p.titleInput.Value())
}

func TestAddRejectsInvalidForm(t *testing.T) {
	backend := &fakeBackend{}
	p := newTestPage(t, backend, search.ModeGuard, false)

	cases := []struct {
		title, amount, want string
	}{
		{"Apple", "", "amount is required"},
		{"Apple", "two", "amount must be a number"},
		{"Apple", "0", "amount must be greater than zero"},
		{"Apple", "NaN", "amount must be a finite number"},
		{"Apple", "Inf", "amount must be a finite number"},
		{"Apple", "-Inf", "amount must be a finite number"},
		{"", "2", "title is required"},
	}
	for _, tc := range cases {
		p.setFocus(focusTitle)
		p.titleInput.SetValue(tc.title)
		p.amountInput.SetValue(tc.amount)
		assert.Nil(t, press(p, "enter"))
		assert.Equal(t, tc.want, p.formError)
	}
	assert.Empty(t, backend.callsWith(http.MethodPost))
	assert.Empty(t, p.Ingredients())
}

func TestAddDisabledWhileListRequestPending(t *testing.T) {
	backend := &fakeBackend{}
	p := newTestPage(t, backend, search.ModeGuard, false)
	p.listReq.Start(p.endpoint.RemoveRequest("x"))

	p.setFocus(focusTitle)
	p.titleInput.SetValue("Apple")
	p.amountInput.SetValue("2")
	assert.Nil(t, press(p, "enter"))
	assert.Contains(t, p.formError, "wait")
	assert.Equal(t, "Apple", p.titleInput.Value())
}

func TestRemoveDeletesOnResponse(t *testing.T) {
	backend := &fakeBackend{respond: func(r *http.Request) (int, string) {
		return http.StatusOK, "null"
	}}
	p := newTestPage(t, backend, search.ModeGuard, false)
	p.dispatch(ingredient.Set([]model.Ingredient{
		{ID: "a", Title: "Apple", Amount: 2},
		{ID: "b", Title: "Salt", Amount: 1},
		{ID: "c", Title: "Flour", Amount: 3},
	}))
	press(p, "down")

	run(t, p, press(p, "d"))

	dels := backend.callsWith(http.MethodDelete)
	require.Len(t, dels, 1)
	assert.Equal(t, "http://backend.test/ingredients/b.json", dels[0].URL.String())
	assert.Equal(t, []model.Ingredient{
		{ID: "a", Title: "Apple", Amount: 2},
		{ID: "c", Title: "Flour", Amount: 3},
	}, p.Ingredients())
	assert.Equal(t, 1, p.cursor)
}

func TestFailureShowsDialogAndDismissClearsTracker(t *testing.T) {
	backend := &fakeBackend{respond: func(r *http.Request) (int, string) {
		return http.StatusInternalServerError, `{"error":"disk full"}`
	}}
	p := newTestPage(t, backend, search.ModeGuard, false)
	p.dispatch(ingredient.Set([]model.Ingredient{{ID: "a", Title: "Apple", Amount: 2}}))

	run(t, p, press(p, "d"))

	st := p.listReq.State()
	assert.Equal(t, request.StatusFailed, st.Status)
	assert.Nil(t, st.Payload)

	modal, ok := p.TopModal().(*ErrorModal)
	require.True(t, ok, "expected an error dialog")
	assert.Contains(t, modal.Message(), "500")
	assert.Contains(t, modal.Message(), "disk full")
	assert.Contains(t, p.View(120, 40), "An Error Occurred!")
	assert.Len(t, p.Ingredients(), 1, "failed remove must not change the list")

	press(p, "enter")
	assert.False(t, p.HasModal())
	assert.Equal(t, request.StatusIdle, p.listReq.State().Status)
}

func TestMalformedBodyIsAFailure(t *testing.T) {
	backend := &fakeBackend{respond: func(r *http.Request) (int, string) {
		return http.StatusOK, `<html>oops</html>`
	}}
	p := newTestPage(t, backend, search.ModeGuard, false)

	run(t, p, p.Init())

	assert.Equal(t, request.StatusFailed, p.searchReq.State().Status)
	modal, ok := p.TopModal().(*ErrorModal)
	require.True(t, ok)
	assert.Contains(t, modal.Message(), "not valid JSON")
}

func TestGuardModeSendsOnlySettledFilter(t *testing.T) {
	backend := &fakeBackend{respond: func(r *http.Request) (int, string) {
		return http.StatusOK, `{"a":{"title":"Apple","amount":2}}`
	}}
	p := newTestPage(t, backend, search.ModeGuard, false)
	p.setFocus(focusSearch)

	first := press(p, "A")
	second := press(p, "p")
	run(t, p, first)
	run(t, p, second)

	gets := backend.callsWith(http.MethodGet)
	require.Len(t, gets, 1)
	assert.Equal(t, `"Ap"`, gets[0].URL.Query().Get("equalTo"))
	assert.Equal(t, `"title"`, gets[0].URL.Query().Get("orderBy"))
}

func TestEveryModeSendsEachKeystroke(t *testing.T) {
	backend := &fakeBackend{respond: func(r *http.Request) (int, string) {
		return http.StatusOK, `{}`
	}}
	p := newTestPage(t, backend, search.ModeEvery, false)
	p.setFocus(focusSearch)

	first := press(p, "A")
	second := press(p, "p")
	run(t, p, first)
	run(t, p, second)

	gets := backend.callsWith(http.MethodGet)
	require.Len(t, gets, 2)
	assert.Equal(t, `"A"`, gets[0].URL.Query().Get("equalTo"))
	assert.Equal(t, `"Ap"`, gets[1].URL.Query().Get("equalTo"))
	assert.Empty(t, p.Ingredients())
}

func TestSearchWithNoMatchesEmptiesList(t *testing.T) {
	backend := &fakeBackend{respond: func(r *http.Request) (int, string) {
		return http.StatusOK, `{}`
	}}
	p := newTestPage(t, backend, search.ModeGuard, false)
	p.dispatch(ingredient.Set([]model.Ingredient{{ID: "a", Title: "Apple", Amount: 2}}))
	p.setFocus(focusSearch)

	run(t, p, press(p, "Z"))

	assert.NotNil(t, p.Ingredients())
	assert.Empty(t, p.Ingredients())
}

func TestOfflineAddRejectsNonFiniteAmount(t *testing.T) {
	p := newTestPage(t, &fakeBackend{}, search.ModeGuard, true)

	for _, amount := range []string{"NaN", "Inf"} {
		p.setFocus(focusTitle)
		p.titleInput.SetValue("Apple")
		p.amountInput.SetValue(amount)
		run(t, p, press(p, "enter"))
		assert.Equal(t, "amount must be a finite number", p.formError)
	}
	assert.Empty(t, p.Ingredients())
}

func TestOfflineModeKeepsListLocally(t *testing.T) {
	backend := &fakeBackend{}
	p := newTestPage(t, backend, search.ModeGuard, true)

	for _, in := range []struct{ title, amount string }{{"Apple", "2"}, {"Salt", "1"}} {
		p.setFocus(focusTitle)
		p.titleInput.SetValue(in.title)
		p.amountInput.SetValue(in.amount)
		run(t, p, press(p, "enter"))
	}

	list := p.Ingredients()
	require.Len(t, list, 2)
	assert.True(t, strings.HasPrefix(list[0].ID, "local-"))
	assert.NotEqual(t, list[0].ID, list[1].ID)

	p.setFocus(focusSearch)
	for _, r := range "Salt" {
		run(t, p, press(p, string(r)))
	}
	require.Len(t, p.Ingredients(), 1)
	assert.Equal(t, "Salt", p.Ingredients()[0].Title)

	press(p, "esc")
	run(t, p, press(p, "d"))
	assert.Empty(t, p.Ingredients())

	p.searchInput.SetValue("")
	run(t, p, p.Init())
	require.Len(t, p.Ingredients(), 1)
	assert.Equal(t, "Apple", p.Ingredients()[0].Title)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	assert.Empty(t, backend.calls, "offline mode must not reach the backend")
}

func TestHelpModalOpensAndCloses(t *testing.T) {
	p := newTestPage(t, &fakeBackend{}, search.ModeGuard, false)

	press(p, "?")
	_, ok := p.TopModal().(*HelpModal)
	require.True(t, ok)
	assert.Contains(t, p.View(120, 40), "Help")

	press(p, "esc")
	assert.False(t, p.HasModal())
}

func TestFocusCycle(t *testing.T) {
	p := newTestPage(t, &fakeBackend{}, search.ModeGuard, false)
	assert.Equal(t, focusList, p.focus)

	press(p, "tab")
	assert.Equal(t, focusTitle, p.focus)
	press(p, "tab")
	assert.Equal(t, focusAmount, p.focus)
	press(p, "tab")
	assert.Equal(t, focusSearch, p.focus)
	press(p, "tab")
	assert.Equal(t, focusList, p.focus)

	press(p, "/")
	assert.Equal(t, focusSearch, p.focus)
	press(p, "esc")
	press(p, "a")
	assert.Equal(t, focusTitle, p.focus)
}

func TestViewRendersList(t *testing.T) {
	p := newTestPage(t, &fakeBackend{}, search.ModeGuard, false)
	p.dispatch(ingredient.Set([]model.Ingredient{
		{ID: "a", Title: "Apple", Amount: 2},
		{ID: "b", Title: "Salt", Amount: 0.5},
	}))

	out := p.View(120, 40)
	assert.Contains(t, out, "Loaded Ingredients (2)")
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "x0.5")
	assert.Contains(t, out, "Amounts")

	narrow := p.View(60, 30)
	assert.NotContains(t, narrow, "Amounts")
}
