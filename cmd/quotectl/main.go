// Command quotectl runs operator tasks for the quote service: schema migrations,
// offline premium calculations against a pricing file and fact categorization.
//
// Usage:
//
//	quotectl migrate up
//	quotectl migrate down --steps 1
//	quotectl quote --product "Vintage Tractor" --risk high --age 18 --plan premium
//	quotectl categorize "User has a Kubota" "Their tractor is 12 years old"
package main

func main() {
	Execute()
}
