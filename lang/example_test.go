package lang_test

import (
	"context"
	"fmt"

	"github.com/ardnew/adcopy/lang"
)

func ExampleEngine_Parse() {
	e := lang.New(lang.WithVars(map[string]string{"vendor": "Apple", "model": "Ipad"}))

	v, err := e.Parse(context.Background(),
		`combinations("{vendor} {model} {}", case, cover)`)
	if err != nil {
		fmt.Println(err)

		return
	}

	for _, s := range v.Strings() {
		fmt.Println(s)
	}
	// Output:
	// Apple Ipad case
	// Apple Ipad cover
	// Apple Ipad case cover
}

func ExampleEngine_Parse_unknownVariable() {
	e := lang.New(lang.WithVars(map[string]string{"jo": "JiMMY"}))

	_, err := e.Parse(context.Background(), `lower({bingo})`)
	fmt.Println(err)
	// Output:
	// unknown variable (name=bingo)
}
