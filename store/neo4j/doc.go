// Package neo4j applies graph operations to a Neo4j database.
//
// A Store owns one driver and one long-lived session. Each operation is
// rendered to parameterized Cypher by package cypher and run as its own
// auto-commit statement; there is no surrounding transaction, so a failure
// leaves earlier statements committed.
//
//	st, err := neo4j.Open(ctx, neo4j.Config{
//	    URI:      "neo4j://localhost:7687",
//	    Username: "neo4j",
//	    Password: "secret",
//	})
//	if err != nil {
//	    return err
//	}
//	defer st.Close(ctx)
//
//	empty, err := st.IsEmpty(ctx)
package neo4j
