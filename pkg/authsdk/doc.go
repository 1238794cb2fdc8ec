/*
Package authsdk provides a client SDK for the roster identity service.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: public operations (login, registration, password reset,
    invitation lookup, tenant provisioning, health)
  - Session: operations that need a bearer token

Create an SDKClient and log in to obtain a Session:

	client := authsdk.NewSDKClient("https://id.example.com")

	session, err := client.Authenticate(ctx, authsdk.LoginRequest{
		Email:    "hanako@example.com",
		Password: password,
	})
	if authsdk.HasCode(err, authsdk.CodeMFARequired) {
		// retry with OTPCode set
	}

	profile, err := session.Me(ctx)

Tokens are short-lived and not refreshable; when Session.Expired reports
true, authenticate again.

# Onboarding

Administrators invite members; the plain token is returned once and is
handed to the invitee out of band:

	issued, err := session.IssueInvitation(ctx, authsdk.IssueInvitationRequest{
		Email:      "taro@example.com",
		Role:       "employee",
		EmployeeNo: "E-0042",
	})

	_, err = client.Register(ctx, authsdk.RegisterRequest{
		InvitationToken: issued.Token,
		Email:           "taro@example.com",
		Password:        password,
		FamilyName:      "Yamada",
		GivenName:       "Taro",
	})

Registering with an email that already has an account attaches the
existing account to the tenant; the password must then be omitted.

# Errors

Every failure from the service is returned as *APIError carrying the
stable machine code. Use HasCode or errors.As to branch on it:

	var apiErr *authsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == authsdk.CodeWeakPassword {
		fmt.Println("choose a stronger", apiErr.Field())
	}
*/
package authsdk
