package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rglregistrations/internal/domain"
)

func TestMemberController_CreateMember(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"created", `{"first_name":"Grace","last_name":"Hopper","email":"grace@example.com"}`, http.StatusCreated},
		{"invalid email", `{"first_name":"Grace","last_name":"Hopper","email":"grace"}`, http.StatusUnprocessableEntity},
		{"bad json", `[`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewMemberController(testLogger, &fakeMemberService{})
			req := httptest.NewRequest(http.MethodPost, "/admin/members", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateMember(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				var m domain.Member
				decodeEnvelope(t, rr, &m)
				assert.Equal(t, testMemberID, m.ID)
			}
		})
	}
}

func TestMemberController_GetMember(t *testing.T) {
	fake := &fakeMemberService{members: map[string]*domain.Member{testMemberID: {ID: testMemberID, FirstName: "Grace"}}}
	ctrl := NewMemberController(testLogger, fake)

	for id, want := range map[string]int{testMemberID: http.StatusOK, "x": http.StatusNotFound, testRegID: http.StatusNotFound} {
		req := httptest.NewRequest(http.MethodGet, "/admin/members/"+id, nil)
		req.SetPathValue("memberID", id)
		rr := httptest.NewRecorder()
		ctrl.GetMember(rr, req)
		assert.Equal(t, want, rr.Code, id)
	}
}
