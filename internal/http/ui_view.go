package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jobboard/jobboard-ui/internal/domain/view"
	"github.com/jobboard/jobboard-ui/internal/ports"
	"github.com/jobboard/jobboard-ui/internal/service"
)

// Index serves the application root. A full page load is the startup event:
// page and jobId are resolved from the query. htmx requests re-render the
// current state.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	visitor := VisitorID(r.Context())

	var (
		res service.Result
		err error
	)
	if IsHTMX(r) {
		res, err = h.View.Current(r.Context(), visitor)
	} else {
		res, err = h.View.Start(r.Context(), visitor, r.URL.Query())
	}
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.renderResult(w, r, res, renderOpts{})
}

// Navigate switches the visitor to the posted page. The value is not checked
// against the page set; unknown pages render as home.
func (h *UIHandlers) Navigate(w http.ResponseWriter, r *http.Request) {
	page := view.Page(strings.TrimSpace(r.FormValue("page")))
	res, err := h.View.Navigate(r.Context(), VisitorID(r.Context()), page)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, res, renderOpts{})
}

// SelectJob opens the details page for the job in the path.
func (h *UIHandlers) SelectJob(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_job_id",
			Err:     errors.New("job id must be an integer"),
		})
		return
	}
	res, err := h.View.SelectJob(r.Context(), VisitorID(r.Context()), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, res, renderOpts{})
}

// Login signs the visitor in with the posted email and name. Unusable input
// re-renders the current page with a field error and leaves state untouched.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	visitor := VisitorID(r.Context())
	creds := ports.Credentials{
		Email: strings.TrimSpace(r.FormValue("email")),
		Name:  strings.TrimSpace(r.FormValue("name")),
	}

	res, err := h.View.Login(r.Context(), visitor, creds)
	if errors.Is(err, ports.ErrInvalidCredentials) {
		h.loginFailed(w, r, creds)
		return
	}
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, res, renderOpts{})
}

func (h *UIHandlers) loginFailed(w http.ResponseWriter, r *http.Request, creds ports.Credentials) {
	res, err := h.View.Current(r.Context(), VisitorID(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	msg := "Enter a valid email address."
	if creds.Email == "" {
		msg = "Email is required."
	}
	h.renderResult(w, r, res, renderOpts{
		FieldErrors: map[string]string{"email": msg},
		Form:        map[string]string{"email": creds.Email, "name": creds.Name},
	})
}

// Logout clears the visitor's user.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	res, err := h.View.Logout(r.Context(), VisitorID(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	h.respond(w, r, res, renderOpts{})
}

type stateUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type stateResponse struct {
	Shell    string      `json:"shell"`
	Page     string      `json:"page"`
	Rendered string      `json:"rendered,omitempty"`
	JobID    *int64      `json:"job_id"`
	User     *stateUser  `json:"user"`
	Props    *view.Props `json:"props,omitempty"`
}

// State returns the visitor's state and render selection as JSON.
func (h *UIHandlers) State(w http.ResponseWriter, r *http.Request) {
	res, err := h.View.Current(r.Context(), VisitorID(r.Context()))
	if err != nil {
		h.logger().ErrorContext(r.Context(), "load view state failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "state_unavailable", Err: err})
		return
	}
	WriteJSON(w, http.StatusOK, newStateResponse(res))
}

func newStateResponse(res service.Result) stateResponse {
	out := stateResponse{
		Page:  res.State.Page.String(),
		JobID: res.State.JobID,
	}
	if u := res.State.User; u != nil {
		out.User = &stateUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
	}
	switch v := res.View.(type) {
	case view.AdminShell:
		out.Shell = "admin"
	case view.Normal:
		out.Shell = "normal"
		out.Rendered = v.Page.String()
		props := v.Props
		out.Props = &props
	}
	return out
}

// respond renders the app fragment for htmx requests. Plain form posts are
// redirected to a startup URL that reproduces the new state.
func (h *UIHandlers) respond(w http.ResponseWriter, r *http.Request, res service.Result, opts renderOpts) {
	if IsHTMX(r) {
		h.renderResult(w, r, res, opts)
		return
	}
	http.Redirect(w, r, startURL(res.State), http.StatusSeeOther)
}

// startURL returns the root URL whose query resolves back to st's page and job.
func startURL(st view.State) string {
	q := url.Values{}
	if st.Page.Valid() && st.Page != view.DefaultPage {
		q.Set(view.ParamPage, st.Page.String())
	}
	if st.JobID != nil {
		q.Set(view.ParamJobID, strconv.FormatInt(*st.JobID, 10))
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func (h *UIHandlers) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrVisitorRequired) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "visitor_required", Err: err})
		return
	}
	h.logger().ErrorContext(r.Context(), "view transition failed",
		"path", r.URL.Path,
		"error", err,
	)
	h.renderErrorPage(w, r, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
