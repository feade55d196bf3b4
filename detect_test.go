package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadPageState(t *testing.T) {
	site := razorpayPayroll()

	testCases := []struct {
		name string
		html string
		want pageState
	}{
		{"check out button", checkOutPage, pageState{CheckOut: true}},
		{"check in button", checkInPage, pageState{CheckIn: true}},
		{"check in upper case", `<button>CHECK IN</button>`, pageState{CheckIn: true}},
		{"check in lower case with suffix", `<button>check in now</button>`, pageState{CheckIn: true}},
		{"marked banner", markedPage, pageState{Marked: true}},
		{"nothing", emptyPage, pageState{}},
		{"empty document", ``, pageState{}},
		{"check out label is case sensitive", `<button>check out</button>`, pageState{}},
		{"label inside child element is ignored", `<button><span>Check In</span></button>`, pageState{}},
		{"link is not a button", `<a href="#">Check In</a>`, pageState{}},
		{"checkin without space", `<button>Checkin</button>`, pageState{}},
		{
			"both buttons",
			`<div><button>Check In</button><button>Check Out</button></div>`,
			pageState{CheckIn: true, CheckOut: true},
		},
		{
			"banner nested in page",
			`<main><section><p class="note">Your attendance has been marked. Have a nice day</p></section></main>`,
			pageState{Marked: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, readPageState(tc.html, site))
		})
	}
}

func TestTextMatches(t *testing.T) {
	assert.True(t, textMatches("Check Out", "Check Out", false))
	assert.False(t, textMatches("CHECK OUT", "Check Out", false))
	assert.True(t, textMatches("CHECK IN", "check in", true))
	assert.False(t, textMatches("anything", "", true))
}
