// Package employeehandler serves the employee screens: the roster, the
// detail page in view and edit modes, creation, and the delete confirmation
// flow. The detail form is saved from two regions whose drafts are merged
// over the original record before a single write to the remote API.
package employeehandler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"hrmadmin/internal/domain/employee"
	"hrmadmin/internal/domain/reference"
	"hrmadmin/internal/platform/apiclient"
	"hrmadmin/internal/recordcodec"
	"hrmadmin/internal/transport/http/web"
)

type Handler struct {
	Employees *employee.Service
	Refs      *reference.Services
	Renderer  *web.Renderer
	Validate  *validator.Validate
}

func NewHandler(employees *employee.Service, refs *reference.Services, renderer *web.Renderer) *Handler {
	return &Handler{
		Employees: employees,
		Refs:      refs,
		Renderer:  renderer,
		Validate:  validator.New(),
	}
}

type listRow struct {
	ID         int64
	Code       string
	Username   string
	Email      string
	Department string
	Group      string
	Status     string
	Token      string
}

type listPage struct {
	Rows   []listRow
	Notice string
	Error  string
}

type detailPage struct {
	Editing bool
	IsNew   bool
	Action  string
	Token   string
	Notice  string
	Error   string
	Emp     employee.Employee

	Departments []reference.Department
	Groups      []reference.Group
	Roles       []reference.Role
	Banks       []reference.Bank
}

// createForm holds the fields validated before the first save. Updates skip
// this: the record already exists and the password is never re-collected.
type createForm struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := listPage{
		Notice: r.URL.Query().Get("notice"),
		Error:  r.URL.Query().Get("error"),
	}

	employees, err := h.Employees.List(r.Context())
	if err != nil {
		slog.Error("employee list failed", "err", err)
		page.Error = errorMessage(err)
		h.Renderer.Render(w, statusFor(err), "employees_list.html", page)
		return
	}

	for _, e := range employees {
		token, err := recordcodec.Encode(e)
		if err != nil {
			continue
		}
		page.Rows = append(page.Rows, listRow{
			ID:         e.ID,
			Code:       e.Code,
			Username:   e.Username,
			Email:      e.Email,
			Department: e.Department.Name,
			Group:      e.Group().Name,
			Status:     rowStatus(e),
			Token:      token,
		})
	}
	h.Renderer.Render(w, http.StatusOK, "employees_list.html", page)
}

func rowStatus(e employee.Employee) string {
	if e.EmploymentInformation != nil && e.EmploymentInformation.EmploymentStatus != nil {
		return *e.EmploymentInformation.EmploymentStatus
	}
	if e.IsActive != nil && !*e.IsActive {
		return "inactive"
	}
	return ""
}

func (h *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	emp := employee.NewInitial()
	token, err := recordcodec.Encode(emp)
	if err != nil {
		h.Renderer.Error(w, http.StatusInternalServerError, "could not prepare the form")
		return
	}
	h.renderDetail(w, r, detailPage{
		Editing: true,
		IsNew:   true,
		Action:  "/employees",
		Token:   token,
		Emp:     emp,
	})
}

func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Renderer.Error(w, http.StatusNotFound, "no such employee")
		return
	}

	// The row link carries the record itself, so a round trip to the remote
	// API is only needed when the token is absent or garbled.
	var emp employee.Employee
	if token := r.URL.Query().Get("data"); !recordcodec.Decode(token, &emp) {
		fetched, err := h.Employees.Get(r.Context(), id)
		if err != nil {
			slog.Error("employee fetch failed", "id", id, "err", err)
			h.Renderer.Error(w, statusFor(err), errorMessage(err))
			return
		}
		emp = *fetched
	}

	token, err := recordcodec.Encode(emp)
	if err != nil {
		h.Renderer.Error(w, http.StatusInternalServerError, "could not render the record")
		return
	}

	h.renderDetail(w, r, detailPage{
		Editing: r.URL.Query().Get("mode") == "edit",
		Action:  "/employees/" + strconv.FormatInt(id, 10),
		Token:   token,
		Notice:  r.URL.Query().Get("notice"),
		Emp:     emp,
	})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Renderer.Error(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	original := employee.NewInitial()
	if token := r.PostFormValue("data"); token != "" {
		var decoded employee.Employee
		if recordcodec.Decode(token, &decoded) {
			original = decoded
		}
	}

	merged, page, ok := h.mergeDrafts(w, r, original, detailPage{
		Editing: true,
		IsNew:   true,
		Action:  "/employees",
	})
	if !ok {
		return
	}

	form := createForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.Validate.Struct(form); err != nil {
		page.Error = "username, password and a valid email are required"
		h.renderDetail(w, r, page)
		return
	}

	if err := h.Employees.Create(r.Context(), merged); err != nil {
		slog.Error("employee create failed", "err", err)
		page.Error = errorMessage(err)
		h.renderDetail(w, r, page)
		return
	}
	http.Redirect(w, r, "/employees?notice="+url.QueryEscape("employee created"), http.StatusSeeOther)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Renderer.Error(w, http.StatusNotFound, "no such employee")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.Renderer.Error(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	var original employee.Employee
	if !recordcodec.Decode(r.PostFormValue("data"), &original) {
		fetched, err := h.Employees.Get(r.Context(), id)
		if err != nil {
			slog.Error("employee fetch failed", "id", id, "err", err)
			h.Renderer.Error(w, statusFor(err), errorMessage(err))
			return
		}
		original = *fetched
	}

	action := "/employees/" + strconv.FormatInt(id, 10)
	merged, page, ok := h.mergeDrafts(w, r, original, detailPage{
		Editing: true,
		Action:  action,
	})
	if !ok {
		return
	}

	message, err := h.Employees.Update(r.Context(), id, merged)
	if err != nil {
		slog.Error("employee update failed", "id", id, "err", err)
		page.Error = errorMessage(err)
		h.renderDetail(w, r, page)
		return
	}
	if message == "" {
		message = "employee updated"
	}

	updated, convErr := employee.FromMap(merged)
	token := ""
	if convErr == nil {
		token, _ = recordcodec.Encode(updated)
	}
	http.Redirect(w, r, action+"?data="+token+"&notice="+url.QueryEscape(message), http.StatusSeeOther)
}

type confirmDeletePage struct {
	ID       int64
	Username string
	Email    string
}

func (h *Handler) HandleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Renderer.Error(w, http.StatusNotFound, "no such employee")
		return
	}

	var emp employee.Employee
	if !recordcodec.Decode(r.URL.Query().Get("data"), &emp) {
		fetched, err := h.Employees.Get(r.Context(), id)
		if err != nil {
			slog.Error("employee fetch failed", "id", id, "err", err)
			h.Renderer.Error(w, statusFor(err), errorMessage(err))
			return
		}
		emp = *fetched
	}

	h.Renderer.Render(w, http.StatusOK, "confirm_delete.html", confirmDeletePage{
		ID:       id,
		Username: emp.Username,
		Email:    emp.Email,
	})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.Renderer.Error(w, http.StatusNotFound, "no such employee")
		return
	}
	if err := h.Employees.Delete(r.Context(), id); err != nil {
		slog.Error("employee delete failed", "id", id, "err", err)
		http.Redirect(w, r, "/employees?error="+url.QueryEscape(errorMessage(err)), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/employees?notice="+url.QueryEscape("employee deleted"), http.StatusSeeOther)
}

// mergeDrafts parses both form regions and merges them over the original
// record. The returned page is pre-filled with the merged record so a failed
// save re-renders the form without losing the operator's input.
func (h *Handler) mergeDrafts(w http.ResponseWriter, r *http.Request, original employee.Employee, page detailPage) (map[string]any, detailPage, bool) {
	originalMap, err := employee.ToMap(original)
	if err != nil {
		h.Renderer.Error(w, http.StatusInternalServerError, "could not read the record")
		return nil, page, false
	}

	departments, groups, roles := h.formReferences(r)
	basic := parseBasicDraft(r.PostForm, departments, groups, roles)
	tabs := parseTabsDraft(r.PostForm, originalMap)
	merged := employee.Merge(originalMap, basic, tabs)

	if rendered, err := employee.FromMap(merged); err == nil {
		page.Emp = rendered
		page.Token, _ = recordcodec.Encode(rendered)
	}
	return merged, page, true
}

func (h *Handler) formReferences(r *http.Request) ([]reference.Department, []reference.Group, []reference.Role) {
	departments, err := h.Refs.Departments.List(r.Context())
	if err != nil {
		slog.Warn("department list failed", "err", err)
	}
	groups, err := h.Refs.Groups.List(r.Context())
	if err != nil {
		slog.Warn("group list failed", "err", err)
	}
	roles, err := h.Refs.Roles.List(r.Context())
	if err != nil {
		slog.Warn("role list failed", "err", err)
	}
	return departments, groups, roles
}

// renderDetail fills the select options and writes the page. A failed lookup
// only costs the options; the form still renders.
func (h *Handler) renderDetail(w http.ResponseWriter, r *http.Request, page detailPage) {
	if page.Editing {
		page.Departments, page.Groups, page.Roles = h.formReferences(r)
		if banks, err := h.Refs.Banks.List(r.Context()); err == nil {
			page.Banks = banks
		} else {
			slog.Warn("bank list failed", "err", err)
		}
	}
	status := http.StatusOK
	if page.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	h.Renderer.Render(w, status, "employee_detail.html", page)
}

// parseBasicDraft builds the identity-and-classification draft. Selecting a
// department, group or role writes both the scalar id and the denormalized
// reference so the view mode can show names without another lookup.
func parseBasicDraft(form url.Values, departments []reference.Department, groups []reference.Group, roles []reference.Role) map[string]any {
	draft := map[string]any{
		"code":      form.Get("code"),
		"username":  form.Get("username"),
		"email":     form.Get("email"),
		"expertise": nilIfEmpty(form.Get("expertise")),
	}
	if password := form.Get("password"); password != "" {
		draft["password"] = password
	}

	if id, ok := parseID(form.Get("departmentId")); ok {
		draft["departmentId"] = id
		draft["Department"] = map[string]any{"id": id, "name": nameOf(id, departmentRefs(departments))}
	} else {
		draft["departmentId"] = nil
		draft["Department"] = map[string]any{}
	}

	if id, ok := parseID(form.Get("groupId")); ok {
		draft["groupId"] = id
		draft["MemberOf"] = []any{map[string]any{"id": id, "name": nameOf(id, groupRefs(groups))}}
	} else {
		draft["groupId"] = nil
		draft["MemberOf"] = []any{}
	}

	if id, ok := parseID(form.Get("roleId")); ok {
		draft["roleId"] = id
		draft["Role"] = map[string]any{"id": id, "name": nameOf(id, roleRefs(roles))}
	}
	return draft
}

var sectionNames = []string{"PrivateInformation", "EmploymentInformation", "FinancialInformation"}

// parseTabsDraft builds the tabbed-region draft. Each nested section is
// seeded from the original record so its id and userId survive the shallow
// merge, then overwritten with the posted leaf fields.
func parseTabsDraft(form url.Values, original map[string]any) map[string]any {
	draft := map[string]any{
		"gender":    form.Get("gender"),
		"birthDate": nilIfEmpty(form.Get("birthDate")),
		"education": nilIfEmpty(form.Get("education")),
	}

	for _, section := range sectionNames {
		seed := map[string]any{}
		if prior, ok := original[section].(map[string]any); ok {
			for key, value := range prior {
				seed[key] = value
			}
		}
		prefix := section + "."
		for key := range form {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			field := strings.TrimPrefix(key, prefix)
			switch field {
			case "basicSalary", "allowance":
				seed[field] = parseNumber(form.Get(key))
			default:
				seed[field] = nilIfEmpty(form.Get(key))
			}
		}
		draft[section] = seed
	}
	return draft
}

func nilIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseNumber(value string) any {
	if value == "" {
		return nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return n
}

func parseID(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func nameOf(id int64, refs map[int64]string) string {
	return refs[id]
}

func departmentRefs(departments []reference.Department) map[int64]string {
	refs := make(map[int64]string, len(departments))
	for _, d := range departments {
		refs[d.ID] = d.Name
	}
	return refs
}

func groupRefs(groups []reference.Group) map[int64]string {
	refs := make(map[int64]string, len(groups))
	for _, g := range groups {
		refs[g.ID] = g.Name
	}
	return refs
}

func roleRefs(roles []reference.Role) map[int64]string {
	refs := make(map[int64]string, len(roles))
	for _, r := range roles {
		refs[r.ID] = r.Name
	}
	return refs
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == 0 {
			return http.StatusBadGateway
		}
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "the employee service is unavailable right now"
}
