// Package docketsdk is a Go client for the docket API.
//
// Unauthenticated calls (health, bootstrap, login, registration, password
// resets, invitation validation) hang off Client. Login returns a Session
// that carries the access token for everything else:
//
//	c := docketsdk.NewClient("http://localhost:8080")
//	s, err := c.Login(ctx, "jane@firm.com", "secret")
//	if err != nil { ... }
//	defer s.Logout(ctx)
//	board, err := s.TaskBoard(ctx, "")
package docketsdk
