package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/quizmaster-backend/services"
)

func answersFrom(t *testing.T, contentType, body string) (map[uint]int, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/user/quiz/1/attempt", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", contentType)
	return readAnswers(c)
}

func TestReadAnswersJSON(t *testing.T) {
	cases := []struct {
		name string
		body string
		want map[uint]int
	}{
		{"numbers", `{"answers":{"1":1,"2":3}}`, map[uint]int{1: 1, 2: 3}},
		{"numeric strings", `{"answers":{"1":"2"," 3 ":" 4 "}}`, map[uint]int{1: 2, 3: 4}},
		{"bad keys skipped", `{"answers":{"abc":1,"-2":1,"5":2}}`, map[uint]int{5: 2}},
		{"bad choices skipped", `{"answers":{"1":"two","2":1.5,"3":null,"4":[1],"5":true,"6":3}}`, map[uint]int{6: 3}},
		{"no answers", `{}`, map[uint]int{}},
		{"empty body", ``, map[uint]int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := answersFrom(t, "application/json", tc.body)
			if err != nil {
				t.Fatalf("readAnswers: %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("answers = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReadAnswersRejectsNonJSON(t *testing.T) {
	_, err := answersFrom(t, "application/json", `{"answers":`)
	var ve *services.ValidationError
	if !errors.As(err, &ve) || ve.Field != "answers" {
		t.Fatalf("err = %v, want ValidationError on answers", err)
	}
}

func TestReadAnswersForm(t *testing.T) {
	got, err := answersFrom(t, "application/x-www-form-urlencoded", "q1=1&q2=+3&qx=1&q3=four&other=2")
	if err != nil {
		t.Fatal(err)
	}
	if want := map[uint]int{1: 1, 2: 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("answers = %v, want %v", got, want)
	}
}
