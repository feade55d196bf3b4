package main

// siteProfile describes the parts of the payroll portal the run depends on.
// All of it is owned by the portal and may change without notice.
type siteProfile struct {
	LoginURL       string
	DashboardPath  string // login succeeded once the location contains this
	EmailField     locator
	PasswordField  locator
	LoginButton    locator
	AttendanceLink locator
	CheckInButton  locator

	CheckOutLabel string
	CheckInLabel  string // matched case-insensitively
	MarkedBanner  string
}

func razorpayPayroll() siteProfile {
	return siteProfile{
		LoginURL:       "https://payroll.razorpay.com/login",
		DashboardPath:  "/dashboard",
		EmailField:     css(`input[name="email"]`),
		PasswordField:  css(`input[name="password"]`),
		LoginButton:    xpath(`//button[contains(text(), 'Login')]`),
		AttendanceLink: css(`a[href*="/attendance"]`),
		CheckInButton:  xpath(`//button[contains(translate(text(), 'CHECKIN', 'checkin'), 'check in')]`),

		CheckOutLabel: "Check Out",
		CheckInLabel:  "check in",
		MarkedBanner:  "Your attendance has been marked",
	}
}
