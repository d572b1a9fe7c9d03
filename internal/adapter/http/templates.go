package adapthttp

import (
	"html/template"
	"net/http"
)

// render writes the named page. Pages are compiled in so the adapter has
// no asset directory to locate at runtime.
func render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = pages.ExecuteTemplate(w, name, data)
}

var pages = template.Must(template.New("pages").Parse(`
{{define "register"}}<!doctype html>
<html>
<head><title>Registration</title></head>
<body>
<h1>registration</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/register">
  <label>Username <input name="username" value="{{.Username}}"></label>
  <label>Email <input name="email" value="{{.Email}}"></label>
  <label>Password <input type="password" name="password"></label>
  <label>Confirm password <input type="password" name="password2"></label>
  <button type="submit">Register</button>
</form>
<a href="/login">Login</a>
</body>
</html>{{end}}

{{define "login"}}<!doctype html>
<html>
<head><title>Login</title></head>
<body>
<h1>Login</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/login">
  <label>Username <input name="username"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Login</button>
</form>
<a href="/register">Registration</a>
<a href="/forgot-password">Forgot password?</a>
</body>
</html>{{end}}

{{define "profile"}}<!doctype html>
<html>
<head><title>Profile</title></head>
<body>
<h1>Profile {{.Username}}</h1>
<a href="/water">New record about water</a>
<a href="/logout">Logout</a>
<table>
  <tr><th>Place</th><th>X</th><th>Y</th><th>Year</th><th>Season</th><th>Index</th><th>Result</th><th>Comment</th><th></th></tr>
  {{range .Records}}
  <tr>
    <td>{{.NamePlace}}</td><td>{{.CoordinateX}}</td><td>{{.CoordinateY}}</td>
    <td>{{.Year}}</td><td>{{.Season}}</td><td>{{.ChemicalIndex}}</td>
    <td>{{.Result}}</td><td>{{.Comment}}</td>
    <td><a href="/set_water/{{.ID}}">Edit</a></td>
  </tr>
  {{end}}
</table>
</body>
</html>{{end}}

{{define "water"}}<!doctype html>
<html>
<head><title>New record about water</title></head>
<body>
<h1>New record about water</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/water">
  <label>Place <input name="name_place" value="{{.Values.NamePlace}}"></label>
  <label>Coordinate X <input name="coordinateX" value="{{.Values.CoordinateX}}"></label>
  <label>Coordinate Y <input name="coordinateY" value="{{.Values.CoordinateY}}"></label>
  <label>Year <input name="year" value="{{.Values.Year}}"></label>
  <label>Season <input name="season" value="{{.Values.Season}}"></label>
  <label>Chemical index <input name="chemical_index" value="{{.Values.ChemicalIndex}}"></label>
  <label>Result <input name="result" value="{{.Values.Result}}"></label>
  <label>Comment <input name="comment" value="{{.Values.Comment}}"></label>
  <button type="submit">Save</button>
</form>
<a href="/profile">Back to profile</a>
</body>
</html>{{end}}

{{define "set_water"}}<!doctype html>
<html>
<head><title>Edit record</title></head>
<body>
<h1>Edit record</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/set_water/{{.ID}}">
  <label>Place <input name="name_place" value="{{.Values.NamePlace}}"></label>
  <label>Coordinate X <input name="coordinateX" value="{{.Values.CoordinateX}}"></label>
  <label>Coordinate Y <input name="coordinateY" value="{{.Values.CoordinateY}}"></label>
  <label>Year <input name="year" value="{{.Values.Year}}"></label>
  <label>Season <input name="season" value="{{.Values.Season}}"></label>
  <label>Chemical index <input name="chemical_index" value="{{.Values.ChemicalIndex}}"></label>
  <label>Result <input name="result" value="{{.Values.Result}}"></label>
  <label>Comment <input name="comment" value="{{.Values.Comment}}"></label>
  <button type="submit">Save</button>
</form>
<a href="/profile">Back to profile</a>
</body>
</html>{{end}}

{{define "forgot_password"}}<!doctype html>
<html>
<head><title>Forgot password</title></head>
<body>
<h1>Forgot password</h1>
{{if .Message}}<p>{{.Message}}</p>{{end}}
<form method="POST" action="/forgot-password">
  <label>Email <input name="email"></label>
  <button type="submit">Send reset link</button>
</form>
<a href="/login">Login</a>
</body>
</html>{{end}}

{{define "reset_password"}}<!doctype html>
<html>
<head><title>Reset password</title></head>
<body>
<h1>Here you can reset your password {{.Username}}</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/reset-password/{{.Token}}">
  <label>New password <input type="password" name="password"></label>
  <label>Confirm password <input type="password" name="password2"></label>
  <button type="submit">Reset</button>
</form>
</body>
</html>{{end}}
`))
