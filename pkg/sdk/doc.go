// Package waqfrag is the embedded SDK for the waqf knowledge engine. It wires
// the retrieval and answering pipeline directly over a Redis corpus, without
// the HTTP layer:
//
//	client, err := waqfrag.New(ctx,
//		waqfrag.WithRedis("localhost:6379", ""),
//		waqfrag.WithOpenAI(apiKey, ""),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	answer, err := client.Ask(ctx, "ما هي شروط صحة الوقف؟", nil)
package waqfrag
