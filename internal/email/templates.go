package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`
<html>
<body>
  <h2>Confirm your email</h2>
  <p>Welcome to ChefHire. Click the link below to verify your address:</p>
  <p><a href="{{.Link}}">Verify email</a></p>
  <p>If you did not create an account, ignore this message.</p>
</body>
</html>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<html>
<body>
  <h2>Welcome to ChefHire, {{.Name}}!</h2>
  <p>Your account is ready. Complete your profile to start getting noticed by
  hospitality employers.</p>
</body>
</html>`))

var subscriptionTmpl = template.Must(template.New("subscription").Parse(`
<html>
<body>
  <h2>Subscription activated</h2>
  <p>Your {{.PlanName}} plan is now active. Full contact details are unlocked.</p>
</body>
</html>`))

func renderVerification(verifyURL string) (string, error) {
	return render(verificationTmpl, map[string]string{"Link": verifyURL})
}

func renderWelcome(name string) (string, error) {
	return render(welcomeTmpl, map[string]string{"Name": name})
}

func renderSubscription(planName string) (string, error) {
	return render(subscriptionTmpl, map[string]string{"PlanName": planName})
}

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`
<html>
<body>
  <h2>Reset your password</h2>
  <p>We received a request to reset your password. The link below is valid
  for one hour:</p>
  <p><a href="{{.Link}}">Reset password</a></p>
  <p>If you did not request this, ignore this message.</p>
</body>
</html>`))

func renderPasswordReset(resetURL string) (string, error) {
	return render(passwordResetTmpl, map[string]string{"Link": resetURL})
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
