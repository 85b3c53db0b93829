package view

// Маршруты клиента.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
	RouteAdmin = "/admin"
)

// Navigator переключает текущий экран.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc — адаптер функции к Navigator.
type NavigatorFunc func(route string)

// Navigate вызывает f(route).
func (f NavigatorFunc) Navigate(route string) { f(route) }

// Confirmer спрашивает у пользователя подтверждение действия.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc — адаптер функции к Confirmer.
type ConfirmerFunc func(prompt string) bool

// Confirm вызывает f(prompt).
func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// RouteRecorder — Navigator, который запоминает маршруты (для CLI и тестов).
type RouteRecorder struct {
	routes []string
}

// Navigate запоминает маршрут.
func (r *RouteRecorder) Navigate(route string) {
	r.routes = append(r.routes, route)
}

// Routes возвращает все маршруты в порядке переходов.
func (r *RouteRecorder) Routes() []string {
	out := make([]string, len(r.routes))
	copy(out, r.routes)
	return out
}

// Last возвращает последний маршрут или пустую строку.
func (r *RouteRecorder) Last() string {
	if len(r.routes) == 0 {
		return ""
	}
	return r.routes[len(r.routes)-1]
}
