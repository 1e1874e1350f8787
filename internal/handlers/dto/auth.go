package dto

type RegisterForm struct {
	Username  string `form:"username"`
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
	Password  string `form:"password"`
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
