// Package credsdk is the Go client for the credentials service and the home
// of its wire types.
//
// Basic usage:
//
//	client := credsdk.NewSDKClient("http://localhost:8080")
//
//	user, err := client.Register(ctx, "anna", "1234", "angel")
//	if err != nil {
//		var apiErr *credsdk.APIError
//		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
//			// username taken
//		}
//	}
//
//	login, err := client.Login(ctx, "anna", "1234")
//	users, err := client.ListUsers(ctx, login.Token)
//
// Every non-success response is returned as an *APIError carrying the status
// code and the server's message.
package credsdk
