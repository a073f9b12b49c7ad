// @title        WealthWise
// @version      1.0
// @description  Personal finance tracker: accounts, email verification, expenses and income.
// @BasePath     /
package main

import "wealthwise/internal/app"

func main() {
	app.Run()
}
