package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"wealthwise/internal/middleware"
)

const dateLayout = "2006-01-02"

var registerOnce sync.Once

// RegisterValidators adds the "amount" rule to gin's validator and makes
// field errors report form tag names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			log.Printf("[handlers] unexpected binding engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("amount", validAmount); err != nil {
			log.Printf("[handlers] register amount validator: %v", err)
		}
	})
}

// validAmount accepts decimal strings that stay positive at two places.
func validAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.Round(2).IsPositive()
}

// bindErrors turns a ShouldBind error into field -> message.
func bindErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form submission"
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "datetime":
		return "Enter a date as YYYY-MM-DD"
	case "oneof":
		return "Choose one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "amount":
		return "Amount must be a positive number"
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	}
	return "Invalid value"
}

// render adds the values every page needs: CSRF token, session user and an
// errors map.
func render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["csrf_token"] = c.GetString(middleware.CSRFKey)
	if uid, ok := middleware.UserID(c); ok {
		data["user_id"] = uid
	}
	if _, ok := data["errors"]; !ok {
		data["errors"] = map[string]string{}
	}
	c.HTML(code, name, data)
}

func renderError(c *gin.Context, tag string, err error) {
	log.Printf("%s internal error: %v", tag, err)
	render(c, http.StatusInternalServerError, "error.html", gin.H{"title": "Error"})
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{"title": "Not found"})
}

// Unavailable answers the report and assistant pages the app links to but
// does not serve yet.
func Unavailable(c *gin.Context) {
	render(c, http.StatusNotFound, "unavailable.html", gin.H{"title": "Not available"})
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
}

// sessionUser reads the user id AuthRequired stored; routes always sit behind it.
func sessionUser(c *gin.Context) int {
	uid, _ := middleware.UserID(c)
	return uid
}
