// Package dialect detects and parses the two annotation dialects.
//
// The XML dialect wraps an endpoint in an <api> element:
//
//	<api method="GET" summary="get user">
//	    <path path="/users/{id}">
//	        <param name="id" type="number" summary="user ID" />
//	    </path>
//	</api>
//
// The header dialect starts with an @api line, optionally followed by group
// and tags lines, and a YAML block:
//
//	@api GET /users/{id} get user
//	group users
//	tags: [t1,t2]
//
//	params:
//	  id:
//	    type: number
//	    description: user ID
//
// Both parsers produce the same [node.Node] tree so that the schema builder
// never needs to know which dialect a block was written in. New dialects
// plug in through [Register].
package dialect
